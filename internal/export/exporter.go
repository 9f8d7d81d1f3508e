package export

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"fleet-route-service/internal/model"
)

// unassignedPlate marks deliveries without a vehicle in the spreadsheet.
const unassignedPlate = "N/A"

var headerRow = []interface{}{
	"ID", "Cliente", "Endereço", "Peso (kg)", "Volume (m³)",
	"Prazo", "Status", "Prioridade", "Observações", "Veículo",
}

// DeliveryExporter writes deliveries to a fixed .xlsx path, overwriting any
// previous file. Failures are logged and reported via the ok flag; they
// never propagate as errors.
type DeliveryExporter struct {
	path string
	log  zerolog.Logger
}

func NewDeliveryExporter(path string, log zerolog.Logger) *DeliveryExporter {
	return &DeliveryExporter{path: path, log: log}
}

func (e *DeliveryExporter) Path() string {
	return e.path
}

// ExportDeliveries flattens the deliveries into one sheet. An empty slice
// still produces a valid header-only file.
func (e *DeliveryExporter) ExportDeliveries(deliveries []model.Delivery) (string, bool) {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.log.Error().Err(err).Str("dir", dir).Msg("create export directory failed")
			return "", false
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		e.log.Error().Err(err).Msg("write export header failed")
		return "", false
	}

	for i, delivery := range deliveries {
		plate := unassignedPlate
		if delivery.Vehicle != nil {
			plate = delivery.Vehicle.Plate
		}
		row := []interface{}{
			delivery.ID.String(),
			delivery.Client,
			delivery.Address,
			delivery.Weight,
			delivery.Volume,
			delivery.Deadline.Format("02/01/2006 15:04"),
			string(delivery.Status),
			string(delivery.Priority),
			delivery.Note,
			plate,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			e.log.Error().Err(err).Int("row", i+2).Msg("compute export cell failed")
			return "", false
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			e.log.Error().Err(err).Int("row", i+2).Msg("write export row failed")
			return "", false
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		e.log.Error().Err(err).Str("path", e.path).Msg("save export file failed")
		return "", false
	}

	e.log.Info().Str("path", e.path).Int("rows", len(deliveries)).Msg("deliveries exported")
	return e.path, true
}

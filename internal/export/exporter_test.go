package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fleet-route-service/internal/model"
)

func sampleDeliveries() []model.Delivery {
	deadline := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	return []model.Delivery{
		{
			ID:       uuid.New(),
			Client:   "Mercado Central",
			Address:  "Rua das Flores, 100",
			Weight:   120.5,
			Volume:   2.3,
			Deadline: deadline,
			Status:   model.DeliveryStatusPending,
			Priority: model.DeliveryPriorityHigh,
			Note:     "Entregar na doca 3",
			Vehicle:  &model.Vehicle{Plate: "ABC-1234"},
		},
		{
			ID:       uuid.New(),
			Client:   "Padaria do Bairro",
			Address:  "Avenida Brasil, 2000",
			Weight:   15,
			Deadline: deadline,
			Status:   model.DeliveryStatusPending,
			Priority: model.DeliveryPriorityNormal,
		},
	}
}

func TestExportDeliveries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "entregas.xlsx")
	exporter := NewDeliveryExporter(path, zerolog.Nop())

	got, ok := exporter.ExportDeliveries(sampleDeliveries())
	require.True(t, ok)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Veículo", rows[0][9])

	assert.Equal(t, "Mercado Central", rows[1][1])
	assert.Equal(t, "15/03/2026 14:30", rows[1][5])
	assert.Equal(t, "ABC-1234", rows[1][9])

	// Unassigned deliveries carry the sentinel plate.
	assert.Equal(t, "N/A", rows[2][9])
}

func TestExportEmptyInputWritesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entregas.xlsx")
	exporter := NewDeliveryExporter(path, zerolog.Nop())

	_, ok := exporter.ExportDeliveries(nil)
	require.True(t, ok)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ID", rows[0][0])
}

func TestExportOverwritesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entregas.xlsx")
	exporter := NewDeliveryExporter(path, zerolog.Nop())

	deliveries := sampleDeliveries()
	_, ok := exporter.ExportDeliveries(deliveries)
	require.True(t, ok)
	_, ok = exporter.ExportDeliveries(deliveries)
	require.True(t, ok)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3, "rows must not accumulate across exports")
}

func TestExportReportsFailure(t *testing.T) {
	// A regular file where the target directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	exporter := NewDeliveryExporter(filepath.Join(blocker, "sub", "entregas.xlsx"), zerolog.Nop())

	path, ok := exporter.ExportDeliveries(sampleDeliveries())
	assert.False(t, ok)
	assert.Empty(t, path)
}

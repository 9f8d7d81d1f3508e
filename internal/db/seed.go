package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-route-service/internal/model"
)

var defaultSettings = []model.Setting{
	{Key: model.SettingFuelPrice, Value: "5.80"},
	{Key: model.SettingHourlyCost, Value: "25.00"},
	{Key: model.SettingWorkdayStart, Value: "08:00"},
	{Key: model.SettingWorkdayEnd, Value: "18:00"},
}

var defaultVehicles = []model.Vehicle{
	{
		Plate:           "ABC-1234",
		Type:            "van",
		Model:           "Mercedes Sprinter",
		Capacity:        800,
		FuelConsumption: 8.5,
		Color:           "#3498db",
	},
	{
		Plate:           "XYZ-5678",
		Type:            "moto",
		Model:           "Honda CG 160",
		Capacity:        50,
		FuelConsumption: 30.0,
		Color:           "#e74c3c",
	},
	{
		Plate:           "DEF-9012",
		Type:            "caminhao",
		Model:           "Volvo FH",
		Capacity:        2000,
		FuelConsumption: 5.5,
		Color:           "#2ecc71",
	},
}

type seedStore interface {
	CountSettings() (int64, error)
	CreateSettings(settings []model.Setting) error
	CountVehicles() (int64, error)
	CreateVehicles(vehicles []model.Vehicle) error
}

type gormSeedStore struct {
	db *gorm.DB
}

func (s *gormSeedStore) CountSettings() (int64, error) {
	var count int64
	err := s.db.Model(&model.Setting{}).Count(&count).Error
	return count, err
}

func (s *gormSeedStore) CreateSettings(settings []model.Setting) error {
	return s.db.Create(&settings).Error
}

func (s *gormSeedStore) CountVehicles() (int64, error) {
	var count int64
	err := s.db.Model(&model.Vehicle{}).Count(&count).Error
	return count, err
}

func (s *gormSeedStore) CreateVehicles(vehicles []model.Vehicle) error {
	return s.db.Create(&vehicles).Error
}

// Seed inserts default settings and the initial fleet on an empty database.
// The existence check keeps repeated startups from duplicating rows; it is
// not transactional, which is fine for a single-process startup.
func Seed(database *gorm.DB, log zerolog.Logger) error {
	return seed(&gormSeedStore{db: database}, log)
}

func seed(store seedStore, log zerolog.Logger) error {
	settingCount, err := store.CountSettings()
	if err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if settingCount == 0 {
		settings := make([]model.Setting, len(defaultSettings))
		copy(settings, defaultSettings)
		if err := store.CreateSettings(settings); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		log.Info().Int("count", len(settings)).Msg("seeded default settings")
	}

	vehicleCount, err := store.CountVehicles()
	if err != nil {
		return fmt.Errorf("count vehicles: %w", err)
	}
	if vehicleCount == 0 {
		vehicles := make([]model.Vehicle, len(defaultVehicles))
		copy(vehicles, defaultVehicles)
		for i := range vehicles {
			vehicles[i].HourlyCost = 25.0
			vehicles[i].Status = "disponivel"
		}
		if err := store.CreateVehicles(vehicles); err != nil {
			return fmt.Errorf("seed vehicles: %w", err)
		}
		log.Info().Int("count", len(vehicles)).Msg("seeded initial fleet")
	}

	return nil
}

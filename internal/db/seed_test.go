package db

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-route-service/internal/model"
)

type fakeSeedStore struct {
	settings []model.Setting
	vehicles []model.Vehicle

	settingCreates int
	vehicleCreates int
}

func (f *fakeSeedStore) CountSettings() (int64, error) {
	return int64(len(f.settings)), nil
}

func (f *fakeSeedStore) CreateSettings(settings []model.Setting) error {
	f.settingCreates++
	f.settings = append(f.settings, settings...)
	return nil
}

func (f *fakeSeedStore) CountVehicles() (int64, error) {
	return int64(len(f.vehicles)), nil
}

func (f *fakeSeedStore) CreateVehicles(vehicles []model.Vehicle) error {
	f.vehicleCreates++
	f.vehicles = append(f.vehicles, vehicles...)
	return nil
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	store := &fakeSeedStore{}

	require.NoError(t, seed(store, zerolog.Nop()))

	require.Len(t, store.settings, 4)
	values := make(map[string]string, len(store.settings))
	for _, s := range store.settings {
		values[s.Key] = s.Value
	}
	assert.Equal(t, "5.80", values[model.SettingFuelPrice])
	assert.Equal(t, "25.00", values[model.SettingHourlyCost])
	assert.Equal(t, "08:00", values[model.SettingWorkdayStart])
	assert.Equal(t, "18:00", values[model.SettingWorkdayEnd])

	require.Len(t, store.vehicles, 3)
	for _, v := range store.vehicles {
		assert.Equal(t, 25.0, v.HourlyCost)
		assert.Equal(t, "disponivel", v.Status)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := &fakeSeedStore{}

	require.NoError(t, seed(store, zerolog.Nop()))
	require.NoError(t, seed(store, zerolog.Nop()))

	assert.Equal(t, 1, store.settingCreates)
	assert.Equal(t, 1, store.vehicleCreates)
	assert.Len(t, store.settings, 4)
	assert.Len(t, store.vehicles, 3)
}

func TestSeedFillsOnlyEmptyTables(t *testing.T) {
	store := &fakeSeedStore{
		settings: []model.Setting{{Key: model.SettingFuelPrice, Value: "6.10"}},
	}

	require.NoError(t, seed(store, zerolog.Nop()))

	assert.Equal(t, 0, store.settingCreates)
	require.Len(t, store.settings, 1)
	assert.Equal(t, "6.10", store.settings[0].Value)

	assert.Equal(t, 1, store.vehicleCreates)
	assert.Len(t, store.vehicles, 3)
}

func TestSeedLeavesDefaultsUnmodified(t *testing.T) {
	store := &fakeSeedStore{}

	require.NoError(t, seed(store, zerolog.Nop()))

	for _, v := range defaultVehicles {
		assert.Zero(t, v.HourlyCost)
		assert.Empty(t, v.Status)
	}
}

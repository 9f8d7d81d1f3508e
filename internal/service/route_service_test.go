package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-route-service/internal/client"
	"fleet-route-service/internal/model"
)

type stubRouter struct {
	route *client.DrivingRoute
	err   error
	calls int
}

func (s *stubRouter) Route(ctx context.Context, waypoints []model.Waypoint) (*client.DrivingRoute, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.route, nil
}

type stubSettings struct {
	values map[string]string
	err    error
}

func (s *stubSettings) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	if s.err != nil {
		return nil, s.err
	}
	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{Key: key, Value: value}, nil
}

type stubRouteStore struct {
	created []*model.Route
	err     error
}

func (s *stubRouteStore) Create(ctx context.Context, route *model.Route) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, route)
	return nil
}

func (s *stubRouteStore) List(ctx context.Context) ([]model.Route, error) {
	return nil, nil
}

type stubVehicleReader struct {
	vehicles map[uuid.UUID]*model.Vehicle
}

func (s *stubVehicleReader) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return s.vehicles[id], nil
}

func newTestRouteService(router *stubRouter, settings *stubSettings, store *stubRouteStore) *RouteService {
	if settings == nil {
		settings = &stubSettings{}
	}
	if store == nil {
		store = &stubRouteStore{}
	}
	return NewRouteService(router, settings, store, &stubVehicleReader{}, zerolog.Nop())
}

func twoWaypoints() []model.Waypoint {
	return []model.Waypoint{
		{Lat: -23.5505, Lon: -46.6333},
		{Lat: -23.5614, Lon: -46.6565},
	}
}

func TestEstimateKnownValues(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  8000,
		DurationSeconds: 3600,
		Geometry:        json.RawMessage(`{"type":"LineString","coordinates":[]}`),
	}}
	svc := newTestRouteService(router, &stubSettings{values: map[string]string{
		model.SettingFuelPrice:  "5.80",
		model.SettingHourlyCost: "25.00",
	}}, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	assert.Equal(t, 8.00, estimate.DistanceKm)
	assert.Equal(t, 60.00, estimate.DurationMin)
	assert.Equal(t, 5.80, estimate.FuelCost)
	assert.Equal(t, 25.00, estimate.LaborCost)
	assert.Equal(t, 30.80, estimate.TotalCost)
}

func TestEstimateTotalIsSumOfParts(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  12345,
		DurationSeconds: 5432,
	}}
	svc := newTestRouteService(router, nil, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	assert.Equal(t, round2(estimate.FuelCost+estimate.LaborCost), estimate.TotalCost)
}

func TestEstimateTooFewWaypoints(t *testing.T) {
	router := &stubRouter{}
	store := &stubRouteStore{}
	svc := newTestRouteService(router, nil, store)

	_, err := svc.Estimate(context.Background(), EstimateInput{
		Waypoints: []model.Waypoint{{Lat: 1, Lon: 2}},
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, router.calls, "no external request may be issued")
	assert.Empty(t, store.created)
}

func TestEstimateDefaultsWhenSettingAbsent(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  8000,
		DurationSeconds: 3600,
	}}
	svc := newTestRouteService(router, &stubSettings{}, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	assert.Equal(t, 5.80, estimate.FuelCost)
	assert.Equal(t, 25.00, estimate.LaborCost)
}

func TestEstimateDefaultsWhenSettingNotNumeric(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  8000,
		DurationSeconds: 3600,
	}}
	svc := newTestRouteService(router, &stubSettings{values: map[string]string{
		model.SettingFuelPrice:  "caro",
		model.SettingHourlyCost: "",
	}}, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	assert.Equal(t, 5.80, estimate.FuelCost)
	assert.Equal(t, 25.00, estimate.LaborCost)
}

func TestEstimateUsesConfiguredRates(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  16000,
		DurationSeconds: 1800,
	}}
	svc := newTestRouteService(router, &stubSettings{values: map[string]string{
		model.SettingFuelPrice:  "6.00",
		model.SettingHourlyCost: "30.00",
	}}, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	// 16 km / 8 km/l * 6.00 and 0.5 h * 30.00
	assert.Equal(t, 12.00, estimate.FuelCost)
	assert.Equal(t, 15.00, estimate.LaborCost)
	assert.Equal(t, 27.00, estimate.TotalCost)
}

func TestEstimateRouteUnavailable(t *testing.T) {
	router := &stubRouter{err: client.ErrNoRoute}
	svc := newTestRouteService(router, nil, nil)

	_, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.ErrorIs(t, err, ErrRouteUnavailable)
}

func TestEstimateServiceFailure(t *testing.T) {
	router := &stubRouter{err: errors.New("connection refused")}
	svc := newTestRouteService(router, nil, nil)

	_, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrRouteUnavailable)
}

func TestEstimateSteps(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  3000,
		DurationSeconds: 600,
		Legs: []client.RouteLeg{
			{Steps: []client.RouteStep{
				{Name: "Avenida Paulista", DistanceMeters: 1234, DurationSeconds: 90},
				{Name: "", DistanceMeters: 500, DurationSeconds: 45},
			}},
			{Steps: []client.RouteStep{
				{Name: "Rua Augusta", DistanceMeters: 1266, DurationSeconds: 465},
			}},
		},
	}}
	svc := newTestRouteService(router, nil, nil)

	estimate, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	require.Len(t, estimate.Steps, 3)
	assert.Equal(t, StepEstimate{Instruction: "Avenida Paulista", DistanceKm: 1.23, DurationMin: 1.5}, estimate.Steps[0])
	assert.Equal(t, StepEstimate{Instruction: "Seguir em frente", DistanceKm: 0.5, DurationMin: 0.75}, estimate.Steps[1])
	assert.Equal(t, StepEstimate{Instruction: "Rua Augusta", DistanceKm: 1.27, DurationMin: 7.75}, estimate.Steps[2])
}

func TestEstimatePersistsRoute(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{
		DistanceMeters:  8000,
		DurationSeconds: 3600,
	}}
	store := &stubRouteStore{}
	svc := newTestRouteService(router, nil, store)

	waypoints := twoWaypoints()
	_, err := svc.Estimate(context.Background(), EstimateInput{Name: "Entrega centro", Waypoints: waypoints})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	saved := store.created[0]
	assert.Equal(t, "Entrega centro", saved.Name)
	assert.Equal(t, 8.00, saved.DistanceKm)
	assert.Equal(t, 30.80, saved.TotalCost)
	assert.Equal(t, saved.FuelCost+saved.LaborCost, saved.TotalCost)

	decoded, err := model.DecodeWaypoints(saved.Waypoints)
	require.NoError(t, err)
	assert.Equal(t, waypoints, decoded)
}

func TestEstimateGeneratesNameWhenMissing(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{DistanceMeters: 1000, DurationSeconds: 60}}
	store := &stubRouteStore{}
	svc := newTestRouteService(router, nil, store)

	_, err := svc.Estimate(context.Background(), EstimateInput{Waypoints: twoWaypoints()})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Contains(t, store.created[0].Name, "Rota ")
}

func TestEstimateUnknownVehicle(t *testing.T) {
	router := &stubRouter{route: &client.DrivingRoute{DistanceMeters: 1000, DurationSeconds: 60}}
	svc := newTestRouteService(router, nil, nil)

	unknown := uuid.NewString()
	_, err := svc.Estimate(context.Background(), EstimateInput{
		VehicleID: &unknown,
		Waypoints: twoWaypoints(),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, router.calls)
}

func TestEstimateWithKnownVehicle(t *testing.T) {
	vehicleID := uuid.New()
	vehicles := &stubVehicleReader{vehicles: map[uuid.UUID]*model.Vehicle{
		vehicleID: {ID: vehicleID, Plate: "ABC-1234", FuelConsumption: 5.5},
	}}
	router := &stubRouter{route: &client.DrivingRoute{DistanceMeters: 8000, DurationSeconds: 3600}}
	store := &stubRouteStore{}
	svc := NewRouteService(router, &stubSettings{}, store, vehicles, zerolog.Nop())

	raw := vehicleID.String()
	estimate, err := svc.Estimate(context.Background(), EstimateInput{
		VehicleID: &raw,
		Waypoints: twoWaypoints(),
	})
	require.NoError(t, err)

	// The fuel formula keeps the fleet-wide 8 km/l assumption even though
	// the vehicle records 5.5 km/l.
	assert.Equal(t, 5.80, estimate.FuelCost)

	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].VehicleID)
	assert.Equal(t, vehicleID, *store.created[0].VehicleID)
}

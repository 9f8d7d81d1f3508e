package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-route-service/internal/client"
	"fleet-route-service/internal/model"
)

const (
	defaultFuelPrice  = 5.80
	defaultHourlyCost = 25.00

	// Fleet-average consumption (km per litre) used by the fuel formula.
	// Vehicles record their own consumption figure, but the estimate keeps
	// the fleet-wide assumption so existing estimates stay comparable.
	assumedConsumptionKmPerL = 8.0

	fallbackInstruction = "Seguir em frente"
)

type drivingRouter interface {
	Route(ctx context.Context, waypoints []model.Waypoint) (*client.DrivingRoute, error)
}

type settingReader interface {
	GetByKey(ctx context.Context, key string) (*model.Setting, error)
}

type routeStore interface {
	Create(ctx context.Context, route *model.Route) error
	List(ctx context.Context) ([]model.Route, error)
}

type vehicleReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
}

type RouteService struct {
	router   drivingRouter
	settings settingReader
	routes   routeStore
	vehicles vehicleReader
	log      zerolog.Logger
}

func NewRouteService(
	router drivingRouter,
	settings settingReader,
	routes routeStore,
	vehicles vehicleReader,
	log zerolog.Logger,
) *RouteService {
	return &RouteService{
		router:   router,
		settings: settings,
		routes:   routes,
		vehicles: vehicles,
		log:      log,
	}
}

type EstimateInput struct {
	Name      string
	VehicleID *string
	Waypoints []model.Waypoint
}

type StepEstimate struct {
	Instruction string  `json:"instruction"`
	DistanceKm  float64 `json:"distance"`
	DurationMin float64 `json:"duration"`
}

type RouteEstimate struct {
	DistanceKm  float64
	DurationMin float64
	Geometry    json.RawMessage
	FuelCost    float64
	LaborCost   float64
	TotalCost   float64
	Steps       []StepEstimate
}

// Estimate requests a driving route through the waypoints and prices it:
// fuel from distance at the configured price per litre, labor from duration
// at the configured hourly rate. The estimate is persisted as a Route row.
func (s *RouteService) Estimate(ctx context.Context, input EstimateInput) (*RouteEstimate, error) {
	if len(input.Waypoints) < 2 {
		return nil, fmt.Errorf("%w: at least 2 waypoints are required", ErrInvalidInput)
	}

	var vehicleID *uuid.UUID
	if input.VehicleID != nil && *input.VehicleID != "" {
		id, err := uuid.Parse(*input.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
		}
		vehicle, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("look up vehicle: %w", err)
		}
		if vehicle == nil {
			return nil, fmt.Errorf("%w: unknown vehicle", ErrInvalidInput)
		}
		vehicleID = &id
	}

	route, err := s.router.Route(ctx, input.Waypoints)
	if err != nil {
		if errors.Is(err, client.ErrNoRoute) {
			return nil, ErrRouteUnavailable
		}
		return nil, fmt.Errorf("request driving route: %w", err)
	}

	distanceKm := route.DistanceMeters / 1000
	hours := route.DurationSeconds / 3600

	fuelPrice := s.settingFloat(ctx, model.SettingFuelPrice, defaultFuelPrice)
	hourlyCost := s.settingFloat(ctx, model.SettingHourlyCost, defaultHourlyCost)

	fuelCost := round2(distanceKm / assumedConsumptionKmPerL * fuelPrice)
	laborCost := round2(hours * hourlyCost)
	totalCost := round2(fuelCost + laborCost)

	estimate := &RouteEstimate{
		DistanceKm:  round2(distanceKm),
		DurationMin: round2(hours * 60),
		Geometry:    route.Geometry,
		FuelCost:    fuelCost,
		LaborCost:   laborCost,
		TotalCost:   totalCost,
		Steps:       buildSteps(route.Legs),
	}

	if err := s.save(ctx, input, vehicleID, estimate); err != nil {
		return nil, fmt.Errorf("persist route: %w", err)
	}

	return estimate, nil
}

func (s *RouteService) List(ctx context.Context) ([]model.Route, error) {
	return s.routes.List(ctx)
}

func (s *RouteService) save(ctx context.Context, input EstimateInput, vehicleID *uuid.UUID, estimate *RouteEstimate) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Rota " + time.Now().Format("02/01/2006 15:04")
	}

	waypoints, err := model.EncodeWaypoints(input.Waypoints)
	if err != nil {
		return fmt.Errorf("encode waypoints: %w", err)
	}

	return s.routes.Create(ctx, &model.Route{
		Name:        name,
		VehicleID:   vehicleID,
		Waypoints:   waypoints,
		DistanceKm:  estimate.DistanceKm,
		DurationMin: estimate.DurationMin,
		FuelCost:    estimate.FuelCost,
		LaborCost:   estimate.LaborCost,
		TotalCost:   estimate.TotalCost,
	})
}

// settingFloat resolves a numeric setting, falling back to the default when
// the key is missing, unreadable or not numeric.
func (s *RouteService) settingFloat(ctx context.Context, key string, fallback float64) float64 {
	setting, err := s.settings.GetByKey(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("setting lookup failed, using default")
		return fallback
	}
	if setting == nil {
		return fallback
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(setting.Value), 64)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", setting.Value).Msg("setting is not numeric, using default")
		return fallback
	}
	return value
}

func buildSteps(legs []client.RouteLeg) []StepEstimate {
	var steps []StepEstimate
	for _, leg := range legs {
		for _, step := range leg.Steps {
			instruction := step.Name
			if instruction == "" {
				instruction = fallbackInstruction
			}
			steps = append(steps, StepEstimate{
				Instruction: instruction,
				DistanceKm:  round2(step.DistanceMeters / 1000),
				DurationMin: round2(step.DurationSeconds / 60),
			})
		}
	}
	return steps
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

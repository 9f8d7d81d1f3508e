package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fleet-route-service/internal/model"
	"fleet-route-service/internal/utils"
)

type vehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleRefCounter interface {
	CountByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error)
}

type VehicleService struct {
	vehicles     vehicleStore
	deliveryRefs vehicleRefCounter
	routeRefs    vehicleRefCounter
}

func NewVehicleService(vehicles vehicleStore, deliveryRefs, routeRefs vehicleRefCounter) *VehicleService {
	return &VehicleService{
		vehicles:     vehicles,
		deliveryRefs: deliveryRefs,
		routeRefs:    routeRefs,
	}
}

type VehicleInput struct {
	Plate           string
	Type            string
	Model           string
	Capacity        float64
	FuelConsumption float64
	HourlyCost      *float64
	Status          string
	Color           string
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	plate := utils.NormalizePlate(input.Plate)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if input.FuelConsumption <= 0 {
		return nil, fmt.Errorf("%w: fuel consumption must be positive", ErrInvalidInput)
	}

	existing, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: plate already registered", ErrConflict)
	}

	vehicle := &model.Vehicle{
		Plate:           plate,
		Type:            strings.TrimSpace(input.Type),
		Model:           strings.TrimSpace(input.Model),
		Capacity:        input.Capacity,
		FuelConsumption: input.FuelConsumption,
		HourlyCost:      defaultHourlyCost,
		Status:          "disponivel",
		Color:           "#3498db",
	}
	if input.HourlyCost != nil && *input.HourlyCost > 0 {
		vehicle.HourlyCost = *input.HourlyCost
	}
	if input.Status != "" {
		vehicle.Status = input.Status
	}
	if input.Color != "" {
		vehicle.Color = input.Color
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
	}
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) Update(ctx context.Context, id string, input VehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if plate := utils.NormalizePlate(input.Plate); plate != "" && plate != vehicle.Plate {
		existing, err := s.vehicles.GetByPlate(ctx, plate)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: plate already registered", ErrConflict)
		}
		vehicle.Plate = plate
	}
	if t := strings.TrimSpace(input.Type); t != "" {
		vehicle.Type = t
	}
	if m := strings.TrimSpace(input.Model); m != "" {
		vehicle.Model = m
	}
	if input.Capacity > 0 {
		vehicle.Capacity = input.Capacity
	}
	if input.FuelConsumption > 0 {
		vehicle.FuelConsumption = input.FuelConsumption
	}
	if input.HourlyCost != nil && *input.HourlyCost > 0 {
		vehicle.HourlyCost = *input.HourlyCost
	}
	if input.Status != "" {
		vehicle.Status = input.Status
	}
	if input.Color != "" {
		vehicle.Color = input.Color
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete refuses to remove a vehicle still referenced by deliveries or
// routes. References must be cleared first.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deliveries, err := s.deliveryRefs.CountByVehicle(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if deliveries > 0 {
		return fmt.Errorf("%w: vehicle has assigned deliveries", ErrConflict)
	}

	routes, err := s.routeRefs.CountByVehicle(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if routes > 0 {
		return fmt.Errorf("%w: vehicle has recorded routes", ErrConflict)
	}

	return s.vehicles.Delete(ctx, vehicle.ID)
}

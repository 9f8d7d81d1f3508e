package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleet-route-service/internal/model"
)

type deliveryStore interface {
	Create(ctx context.Context, delivery *model.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error)
	List(ctx context.Context) ([]model.Delivery, error)
	Update(ctx context.Context, delivery *model.Delivery) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type deliveryExporter interface {
	ExportDeliveries(deliveries []model.Delivery) (string, bool)
}

type DeliveryService struct {
	deliveries deliveryStore
	vehicles   vehicleReader
	exporter   deliveryExporter
}

func NewDeliveryService(deliveries deliveryStore, vehicles vehicleReader, exporter deliveryExporter) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		vehicles:   vehicles,
		exporter:   exporter,
	}
}

type DeliveryInput struct {
	Client    string
	Address   string
	Weight    float64
	Volume    float64
	Deadline  string
	Status    string
	Priority  string
	Note      string
	VehicleID *string
}

func (s *DeliveryService) Create(ctx context.Context, input DeliveryInput) (*model.Delivery, error) {
	if strings.TrimSpace(input.Client) == "" {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if input.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}

	deadline, err := parseTime(input.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid deadline", ErrInvalidInput)
	}

	vehicleID, err := s.resolveVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	delivery := &model.Delivery{
		Client:    strings.TrimSpace(input.Client),
		Address:   strings.TrimSpace(input.Address),
		Weight:    input.Weight,
		Volume:    input.Volume,
		Deadline:  deadline,
		Status:    model.DeliveryStatusPending,
		Priority:  model.DeliveryPriorityNormal,
		Note:      input.Note,
		VehicleID: vehicleID,
	}
	if input.Status != "" {
		delivery.Status = model.DeliveryStatus(input.Status)
	}
	if input.Priority != "" {
		delivery.Priority = model.DeliveryPriority(input.Priority)
	}

	if err := s.deliveries.Create(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) Get(ctx context.Context, id string) (*model.Delivery, error) {
	deliveryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid delivery id", ErrInvalidInput)
	}
	delivery, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, ErrNotFound
	}
	return delivery, nil
}

func (s *DeliveryService) List(ctx context.Context) ([]model.Delivery, error) {
	return s.deliveries.List(ctx)
}

func (s *DeliveryService) Update(ctx context.Context, id string, input DeliveryInput) (*model.Delivery, error) {
	delivery, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c := strings.TrimSpace(input.Client); c != "" {
		delivery.Client = c
	}
	if a := strings.TrimSpace(input.Address); a != "" {
		delivery.Address = a
	}
	if input.Weight > 0 {
		delivery.Weight = input.Weight
	}
	if input.Volume > 0 {
		delivery.Volume = input.Volume
	}
	if input.Deadline != "" {
		deadline, err := parseTime(input.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid deadline", ErrInvalidInput)
		}
		delivery.Deadline = deadline
	}
	if input.Status != "" {
		delivery.Status = model.DeliveryStatus(input.Status)
	}
	if input.Priority != "" {
		delivery.Priority = model.DeliveryPriority(input.Priority)
	}
	if input.Note != "" {
		delivery.Note = input.Note
	}
	if input.VehicleID != nil {
		vehicleID, err := s.resolveVehicle(ctx, input.VehicleID)
		if err != nil {
			return nil, err
		}
		delivery.VehicleID = vehicleID
	}

	if err := s.deliveries.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) Delete(ctx context.Context, id string) error {
	delivery, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.deliveries.Delete(ctx, delivery.ID)
}

// Export flattens all deliveries into the spreadsheet file. Export problems
// never become hard failures; the boolean reports whether the file was
// written.
func (s *DeliveryService) Export(ctx context.Context) (string, bool, error) {
	deliveries, err := s.deliveries.List(ctx)
	if err != nil {
		return "", false, err
	}
	path, ok := s.exporter.ExportDeliveries(deliveries)
	return path, ok, nil
}

// resolveVehicle validates an optional assignment. An empty string clears it.
func (s *DeliveryService) resolveVehicle(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
	}
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: unknown vehicle", ErrInvalidInput)
	}
	return &id, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}

package service

import (
	"context"
	"time"

	"fleet-route-service/internal/model"
)

type fleetStats interface {
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
}

type deliveryStats interface {
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[model.DeliveryStatus]int64, error)
}

type routeStats interface {
	Count(ctx context.Context) (int64, error)
}

type DashboardService struct {
	vehicles   fleetStats
	deliveries deliveryStats
	routes     routeStats
}

func NewDashboardService(vehicles fleetStats, deliveries deliveryStats, routes routeStats) *DashboardService {
	return &DashboardService{
		vehicles:   vehicles,
		deliveries: deliveries,
		routes:     routes,
	}
}

type DashboardStats struct {
	TotalVehicles     int64   `json:"total_veiculos"`
	DeliveriesToday   int64   `json:"entregas_hoje"`
	PendingDeliveries int64   `json:"entregas_pendentes"`
	TotalRoutes       int64   `json:"total_rotas"`
	Efficiency        float64 `json:"eficiencia"`
}

type DashboardCharts struct {
	DeliveriesByStatus map[model.DeliveryStatus]int64 `json:"entregas_por_status"`
	VehiclesByType     map[string]int64               `json:"veiculos_por_tipo"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalVehicles, err := s.vehicles.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deliveriesToday, err := s.deliveries.CountCreatedSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.deliveries.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalRoutes, err := s.routes.Count(ctx)
	if err != nil {
		return nil, err
	}

	var totalDeliveries int64
	for _, count := range byStatus {
		totalDeliveries += count
	}

	// Efficiency is the completed share of all deliveries, in percent.
	efficiency := 0.0
	if totalDeliveries > 0 {
		efficiency = round2(float64(byStatus[model.DeliveryStatusDone]) / float64(totalDeliveries) * 100)
	}

	return &DashboardStats{
		TotalVehicles:     totalVehicles,
		DeliveriesToday:   deliveriesToday,
		PendingDeliveries: byStatus[model.DeliveryStatusPending],
		TotalRoutes:       totalRoutes,
		Efficiency:        efficiency,
	}, nil
}

func (s *DashboardService) Charts(ctx context.Context) (*DashboardCharts, error) {
	byStatus, err := s.deliveries.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.vehicles.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardCharts{
		DeliveriesByStatus: byStatus,
		VehiclesByType:     byType,
	}, nil
}

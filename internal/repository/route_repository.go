package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-route-service/internal/model"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(ctx context.Context, route *model.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *RouteRepository) List(ctx context.Context) ([]model.Route, error) {
	var routes []model.Route
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Order("created_at DESC").
		Find(&routes).Error
	return routes, err
}

func (r *RouteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Route{}).Count(&count).Error
	return count, err
}

func (r *RouteRepository) CountByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Route{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count, err
}

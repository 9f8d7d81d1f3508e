package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Plate           string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"placa"`
	Type            string    `gorm:"type:varchar(20);not null" json:"tipo"`
	Model           string    `gorm:"type:varchar(50);default:''" json:"modelo"`
	Capacity        float64   `gorm:"not null" json:"capacidade"`
	FuelConsumption float64   `gorm:"not null" json:"consumo"`
	HourlyCost      float64   `gorm:"default:25.0" json:"custo_hora"`
	Status          string    `gorm:"type:varchar(20);default:disponivel" json:"status"`
	Color           string    `gorm:"type:varchar(7);default:#3498db" json:"cor"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

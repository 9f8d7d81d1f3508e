package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pendente"
	DeliveryStatusAssigned  DeliveryStatus = "atribuida"
	DeliveryStatusInTransit DeliveryStatus = "em_rota"
	DeliveryStatusDone      DeliveryStatus = "entregue"
	DeliveryStatusCancelled DeliveryStatus = "cancelada"
)

type DeliveryPriority string

const (
	DeliveryPriorityLow    DeliveryPriority = "baixa"
	DeliveryPriorityNormal DeliveryPriority = "normal"
	DeliveryPriorityHigh   DeliveryPriority = "alta"
)

type Delivery struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Client    string           `gorm:"type:varchar(100);not null" json:"cliente"`
	Address   string           `gorm:"type:varchar(200);not null" json:"endereco"`
	Weight    float64          `gorm:"not null" json:"peso"`
	Volume    float64          `gorm:"default:0" json:"volume"`
	Deadline  time.Time        `gorm:"not null" json:"prazo"`
	Status    DeliveryStatus   `gorm:"type:varchar(20);default:pendente" json:"status"`
	Priority  DeliveryPriority `gorm:"type:varchar(20);default:normal" json:"prioridade"`
	Note      string           `gorm:"type:text;default:''" json:"observacao"`
	VehicleID *uuid.UUID       `gorm:"type:uuid;index" json:"veiculo_id"`
	Vehicle   *Vehicle         `gorm:"foreignKey:VehicleID" json:"veiculo,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

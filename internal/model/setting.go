package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting keys used by route cost estimation and the work-hour window.
const (
	SettingFuelPrice    = "preco_combustivel"
	SettingHourlyCost   = "custo_hora_funcionario"
	SettingWorkdayStart = "horario_inicio_expediente"
	SettingWorkdayEnd   = "horario_fim_expediente"
)

type Setting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Key       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"chave"`
	Value     string    `gorm:"type:varchar(200);not null" json:"valor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Setting) TableName() string {
	return "settings"
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Waypoint is a latitude/longitude stop on a route. The wire and storage
// format is a two-element [lat, lon] array.
type Waypoint struct {
	Lat float64
	Lon float64
}

func (w Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{w.Lat, w.Lon})
}

func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	w.Lat = pair[0]
	w.Lon = pair[1]
	return nil
}

// EncodeWaypoints serializes waypoints for the routes.waypoints text column.
func EncodeWaypoints(points []Waypoint) (string, error) {
	raw, err := json.Marshal(points)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeWaypoints(raw string) ([]Waypoint, error) {
	if raw == "" {
		return nil, nil
	}
	var points []Waypoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Route is a persisted cost estimate. TotalCost is always the sum of
// FuelCost and LaborCost; rows are written once and never edited.
type Route struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"nome"`
	VehicleID   *uuid.UUID `gorm:"type:uuid;index" json:"veiculo_id"`
	Vehicle     *Vehicle   `gorm:"foreignKey:VehicleID" json:"veiculo,omitempty"`
	Waypoints   string     `gorm:"type:text" json:"waypoints"`
	DistanceKm  float64    `gorm:"column:distance_km" json:"distancia"`
	DurationMin float64    `gorm:"column:duration_min" json:"tempo_estimado"`
	FuelCost    float64    `json:"custo_combustivel"`
	LaborCost   float64    `json:"custo_funcionario"`
	TotalCost   float64    `json:"custo_total"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Route) TableName() string {
	return "routes"
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

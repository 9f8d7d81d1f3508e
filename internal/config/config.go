package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ExternalServicesConfig struct {
	GeocoderURL string
	RouterURL   string
}

type ExportConfig struct {
	DeliveriesPath string
}

type Config struct {
	Environment      string
	HTTP             HTTPConfig
	DB               DBConfig
	ExternalServices ExternalServicesConfig
	Export           ExportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		ExternalServices: ExternalServicesConfig{
			GeocoderURL: v.GetString("GEOCODER_URL"),
			RouterURL:   v.GetString("ROUTER_URL"),
		},
		Export: ExportConfig{
			DeliveriesPath: v.GetString("EXPORT_DELIVERIES_PATH"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ExternalServices.GeocoderURL == "" {
		cfg.ExternalServices.GeocoderURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.ExternalServices.RouterURL == "" {
		cfg.ExternalServices.RouterURL = "http://router.project-osrm.org"
	}
	if cfg.Export.DeliveriesPath == "" {
		cfg.Export.DeliveriesPath = "data/entregas.xlsx"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	return nil
}

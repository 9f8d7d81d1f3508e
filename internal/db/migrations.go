package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		key VARCHAR(50) NOT NULL UNIQUE,
		value VARCHAR(200) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plate VARCHAR(10) NOT NULL UNIQUE,
		type VARCHAR(20) NOT NULL,
		model VARCHAR(50) NOT NULL DEFAULT '',
		capacity DOUBLE PRECISION NOT NULL,
		fuel_consumption DOUBLE PRECISION NOT NULL,
		hourly_cost DOUBLE PRECISION NOT NULL DEFAULT 25.0,
		status VARCHAR(20) NOT NULL DEFAULT 'disponivel',
		color VARCHAR(7) NOT NULL DEFAULT '#3498db',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client VARCHAR(100) NOT NULL,
		address VARCHAR(200) NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		volume DOUBLE PRECISION NOT NULL DEFAULT 0,
		deadline TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pendente',
		priority VARCHAR(20) NOT NULL DEFAULT 'normal',
		note TEXT NOT NULL DEFAULT '',
		vehicle_id UUID REFERENCES vehicles(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_vehicle_id ON deliveries (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_status ON deliveries (status);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries (created_at);`,
	`CREATE TABLE IF NOT EXISTS routes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		vehicle_id UUID REFERENCES vehicles(id) ON DELETE RESTRICT,
		waypoints TEXT,
		distance_km DOUBLE PRECISION,
		duration_min DOUBLE PRECISION,
		fuel_cost DOUBLE PRECISION,
		labor_cost DOUBLE PRECISION,
		total_cost DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_vehicle_id ON routes (vehicle_id);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_deliveries_updated_at') THEN
			CREATE TRIGGER trg_deliveries_updated_at
				BEFORE UPDATE ON deliveries
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

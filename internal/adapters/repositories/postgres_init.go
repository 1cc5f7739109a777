package repositories

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/domain"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Initialize the Postgres schema and the read views used by the screens.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL UNIQUE,
		email TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		has_cdl BOOLEAN NOT NULL DEFAULT false,
		cdl_number TEXT,
		cdl_expiration_date DATE,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS delivery_runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		store_id UUID NOT NULL REFERENCES stores(id),
		run_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Upcoming',
		start_time TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSuppliesQuery := `
	CREATE TABLE IF NOT EXISTS store_supplies (
		store_id UUID PRIMARY KEY REFERENCES stores(id),
		sleeves INTEGER NOT NULL DEFAULT 0,
		caps INTEGER NOT NULL DEFAULT 0,
		canvases INTEGER NOT NULL DEFAULT 0,
		totes INTEGER NOT NULL DEFAULT 0,
		hardlines_raw INTEGER NOT NULL DEFAULT 0,
		softlines_raw INTEGER NOT NULL DEFAULT 0
	);
	`

	createLoadingsQuery := `
	CREATE TABLE IF NOT EXISTS run_loadings (
		run_id UUID PRIMARY KEY REFERENCES delivery_runs(id),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		sleeves INTEGER NOT NULL,
		caps INTEGER NOT NULL,
		canvases INTEGER NOT NULL,
		totes INTEGER NOT NULL,
		hardlines_raw INTEGER NOT NULL,
		softlines_raw INTEGER NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL
	);
	`

	createRunsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_runs_driver_created
	ON delivery_runs(driver_id, created_at);
	`

	createActiveRunsViewQuery := `
	CREATE OR REPLACE VIEW active_delivery_runs AS
	SELECT
		r.id,
		r.driver_id,
		r.store_id,
		s.name AS store_name,
		r.run_type,
		r.status,
		r.start_time,
		r.created_at
	FROM delivery_runs r
	JOIN stores s ON s.id = r.store_id
	WHERE r.status <> 'Completed';
	`

	createActiveDriversViewQuery := `
	CREATE OR REPLACE VIEW active_drivers_view AS
	SELECT
		id,
		user_id,
		email,
		first_name,
		last_name,
		has_cdl,
		cdl_number,
		cdl_expiration_date,
		is_active,
		created_at
	FROM drivers;
	`

	statements := []string{
		createStoresQuery,
		createDriversQuery,
		createRunsQuery,
		createSuppliesQuery,
		createLoadingsQuery,
		createRunsIndexQuery,
		createActiveRunsViewQuery,
		createActiveDriversViewQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Seed is the layout of a development fixture file.
type Seed struct {
	Stores  []StoreSeed  `yaml:"stores"`
	Drivers []DriverSeed `yaml:"drivers"`
	Runs    []RunSeed    `yaml:"runs"`
}

type StoreSeed struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Address  string      `yaml:"address"`
	Supplies *SupplySeed `yaml:"supplies"`
}

type SupplySeed struct {
	Sleeves      int `yaml:"sleeves"`
	Caps         int `yaml:"caps"`
	Canvases     int `yaml:"canvases"`
	Totes        int `yaml:"totes"`
	HardlinesRaw int `yaml:"hardlines_raw"`
	SoftlinesRaw int `yaml:"softlines_raw"`
}

type DriverSeed struct {
	ID                string `yaml:"id"`
	UserID            string `yaml:"user_id"`
	Email             string `yaml:"email"`
	FirstName         string `yaml:"first_name"`
	LastName          string `yaml:"last_name"`
	HasCDL            bool   `yaml:"has_cdl"`
	CDLNumber         string `yaml:"cdl_number"`
	CDLExpirationDate string `yaml:"cdl_expiration_date"`
	IsActive          *bool  `yaml:"is_active"`
}

type RunSeed struct {
	ID        string     `yaml:"id"`
	DriverID  string     `yaml:"driver_id"`
	StoreID   string     `yaml:"store_id"`
	RunType   string     `yaml:"run_type"`
	Status    string     `yaml:"status"`
	StartTime *time.Time `yaml:"start_time"`
}

// Read and check a YAML fixture file.
func LoadSeed(path string) (*Seed, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(bytes, &seed); err != nil {
		return nil, fmt.Errorf("load seed: parse yaml: %w", err)
	}

	for i, s := range seed.Stores {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("load seed: store at index %d: id and name are required", i+1)
		}
	}
	for i, d := range seed.Drivers {
		if strings.TrimSpace(d.ID) == "" || strings.TrimSpace(d.UserID) == "" {
			return nil, fmt.Errorf("load seed: driver at index %d: id and user_id are required", i+1)
		}
	}
	for i, r := range seed.Runs {
		if r.ID == "" || r.DriverID == "" || r.StoreID == "" {
			return nil, fmt.Errorf("load seed: run at index %d: id, driver_id and store_id are required", i+1)
		}
	}

	return &seed, nil
}

// Populate the database from a YAML fixture file. Existing rows are replaced.
func SeedFromYAML(ctx context.Context, db *sql.DB, path string) error {
	seed, err := LoadSeed(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range seed.Stores {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO stores (id, name, address)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address;
		`, s.ID, s.Name, s.Address)
		if err != nil {
			return fmt.Errorf("seed: insert store id=%s: %w", s.ID, err)
		}

		if s.Supplies == nil {
			continue
		}
		q := s.Supplies
		_, err = tx.ExecContext(ctx, `
		INSERT INTO store_supplies (store_id, sleeves, caps, canvases, totes, hardlines_raw, softlines_raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (store_id) DO UPDATE
		SET sleeves = EXCLUDED.sleeves,
			caps = EXCLUDED.caps,
			canvases = EXCLUDED.canvases,
			totes = EXCLUDED.totes,
			hardlines_raw = EXCLUDED.hardlines_raw,
			softlines_raw = EXCLUDED.softlines_raw;
		`, s.ID, q.Sleeves, q.Caps, q.Canvases, q.Totes, q.HardlinesRaw, q.SoftlinesRaw)
		if err != nil {
			return fmt.Errorf("seed: insert supplies store_id=%s: %w", s.ID, err)
		}
	}

	for _, d := range seed.Drivers {
		active := true
		if d.IsActive != nil {
			active = *d.IsActive
		}
		cdl := domain.NewCDLUpdate(d.HasCDL, d.CDLNumber, d.CDLExpirationDate)
		_, err := tx.ExecContext(ctx, `
		INSERT INTO drivers (id, user_id, email, first_name, last_name, has_cdl, cdl_number, cdl_expiration_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			has_cdl = EXCLUDED.has_cdl,
			cdl_number = EXCLUDED.cdl_number,
			cdl_expiration_date = EXCLUDED.cdl_expiration_date,
			is_active = EXCLUDED.is_active;
		`, d.ID, d.UserID, d.Email, d.FirstName, d.LastName, cdl.HasCDL, cdl.Number, cdl.ExpirationDate, active)
		if err != nil {
			return fmt.Errorf("seed: insert driver id=%s: %w", d.ID, err)
		}
	}

	for _, r := range seed.Runs {
		status := r.Status
		if status == "" {
			status = "Upcoming"
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO delivery_runs (id, driver_id, store_id, run_type, status, start_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET driver_id = EXCLUDED.driver_id,
			store_id = EXCLUDED.store_id,
			run_type = EXCLUDED.run_type,
			status = EXCLUDED.status,
			start_time = EXCLUDED.start_time;
		`, r.ID, r.DriverID, r.StoreID, r.RunType, status, r.StartTime)
		if err != nil {
			return fmt.Errorf("seed: insert run id=%s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

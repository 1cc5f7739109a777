package repositories

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the SupplyRepository port.
type PostgresSupplyRepository struct{ DB *sql.DB }

func NewPostgresSupplyRepository(db *sql.DB) *PostgresSupplyRepository {
	return &PostgresSupplyRepository{DB: db}
}

// Return the single store_supplies row of a store. NULL counters read as zero.
func (p *PostgresSupplyRepository) RequiredForStore(ctx context.Context, storeID string) (_ domain.SupplyQuantities, err error) {
	defer obs.Time(ctx, "supplies.RequiredForStore")(&err)

	var q domain.SupplyQuantities
	if p.DB == nil {
		return q, errors.New("supply repository: DB is nil")
	}

	err = p.DB.QueryRowContext(ctx, `
	SELECT
		COALESCE(sleeves, 0),
		COALESCE(caps, 0),
		COALESCE(canvases, 0),
		COALESCE(totes, 0),
		COALESCE(hardlines_raw, 0),
		COALESCE(softlines_raw, 0)
	FROM store_supplies
	WHERE store_id = $1;
	`, storeID).Scan(&q.Sleeves, &q.Caps, &q.Canvases, &q.Totes, &q.HardlinesRaw, &q.SoftlinesRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SupplyQuantities{}, fmt.Errorf("required quantities: no store_supplies row for store %s", storeID)
	}
	if err != nil {
		return domain.SupplyQuantities{}, fmt.Errorf("required quantities: query store_supplies: %w", err)
	}

	return q, nil
}

// Postgres-backed implementation of the LoadingRepository port.
type PostgresLoadingRepository struct{ DB *sql.DB }

func NewPostgresLoadingRepository(db *sql.DB) *PostgresLoadingRepository {
	return &PostgresLoadingRepository{DB: db}
}

// Upsert the loaded quantities of a run and move it from Upcoming to Preloaded.
// Both writes share one transaction.
func (p *PostgresLoadingRepository) CompleteLoading(ctx context.Context, rec domain.LoadingRecord) (err error) {
	defer obs.Time(ctx, "loadings.CompleteLoading")(&err)

	if p.DB == nil {
		return errors.New("loading repository: DB is nil")
	}

	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("complete loading: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := rec.Loaded
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO run_loadings (run_id, driver_id, sleeves, caps, canvases, totes, hardlines_raw, softlines_raw, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id) DO UPDATE
	SET driver_id = EXCLUDED.driver_id,
		sleeves = EXCLUDED.sleeves,
		caps = EXCLUDED.caps,
		canvases = EXCLUDED.canvases,
		totes = EXCLUDED.totes,
		hardlines_raw = EXCLUDED.hardlines_raw,
		softlines_raw = EXCLUDED.softlines_raw,
		completed_at = EXCLUDED.completed_at;
	`, rec.RunID, rec.DriverID, q.Sleeves, q.Caps, q.Canvases, q.Totes, q.HardlinesRaw, q.SoftlinesRaw, completedAt); err != nil {
		return fmt.Errorf("complete loading: upsert run_loadings run_id=%s: %w", rec.RunID, err)
	}

	res, err := tx.ExecContext(ctx, `
	UPDATE delivery_runs
	SET status = $1
	WHERE id = $2
		AND driver_id = $3
		AND status = $4;
	`, string(domain.StatusPreloaded), rec.RunID, rec.DriverID, string(domain.StatusUpcoming))
	if err != nil {
		return fmt.Errorf("complete loading: update delivery_runs run_id=%s: %w", rec.RunID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete loading: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("complete loading: run %s is no longer upcoming: %w", rec.RunID, domain.ErrActionDisabled)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("complete loading: commit tx: %w", err)
	}

	return nil
}

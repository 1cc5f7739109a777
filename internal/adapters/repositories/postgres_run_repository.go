package repositories

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the RunRepository port.
// Runs are read from active_delivery_runs joined with stores.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

const selectRuns = `
	SELECT
		r.id::text,
		r.driver_id::text,
		r.store_id::text,
		r.store_name,
		r.run_type,
		r.status,
		r.start_time,
		r.created_at,
		s.id::text,
		s.name,
		s.address
	FROM active_delivery_runs r
	LEFT JOIN stores s ON s.id = r.store_id
`

func (p *PostgresRunRepository) ListRunsForDriver(ctx context.Context, driverID string) (_ []*domain.DeliveryRun, err error) {
	defer obs.Time(ctx, "runs.ListRunsForDriver")(&err)

	if p.DB == nil {
		return nil, errors.New("run repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, selectRuns+`
	WHERE r.driver_id = $1
	ORDER BY r.created_at ASC;
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list runs: query active_delivery_runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.DeliveryRun, 0, 8)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func (p *PostgresRunRepository) GetRunForDriver(ctx context.Context, driverID, runID string) (_ *domain.DeliveryRun, err error) {
	defer obs.Time(ctx, "runs.GetRunForDriver")(&err)

	if p.DB == nil {
		return nil, errors.New("run repository: DB is nil")
	}

	row := p.DB.QueryRowContext(ctx, selectRuns+`
	WHERE r.driver_id = $1
		AND r.id = $2;
	`, driverID, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", runID, domain.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.DeliveryRun, error) {
	var run domain.DeliveryRun
	var runType, status string
	var start sql.NullTime
	var storeID, storeName, storeAddress sql.NullString

	if err := row.Scan(
		&run.ID,
		&run.DriverID,
		&run.StoreID,
		&run.StoreName,
		&runType,
		&status,
		&start,
		&run.CreatedAt,
		&storeID,
		&storeName,
		&storeAddress,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run row: %w", err)
	}

	run.RunType = domain.RunType(runType)
	run.Status = domain.RunStatus(status)
	if start.Valid {
		t := start.Time
		run.StartTime = &t
	}
	if storeID.Valid {
		run.Store = &domain.Store{
			ID:      storeID.String,
			Name:    storeName.String,
			Address: nullString(storeAddress),
		}
	}

	return &run, nil
}

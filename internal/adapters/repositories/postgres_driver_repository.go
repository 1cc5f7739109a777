package repositories

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DriverRepository port.
type PostgresDriverRepository struct{ DB *sql.DB }

func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

func (p *PostgresDriverRepository) DriverIDForUser(ctx context.Context, userID string) (_ string, err error) {
	defer obs.Time(ctx, "drivers.DriverIDForUser")(&err)

	if p.DB == nil {
		return "", errors.New("driver repository: DB is nil")
	}

	var id string
	err = p.DB.QueryRowContext(ctx, `
	SELECT id::text
	FROM drivers
	WHERE user_id = $1;
	`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("driver for user %s: %w", userID, domain.ErrDriverNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("driver for user: query drivers table: %w", err)
	}

	return id, nil
}

// Return every row of active_drivers_view, newest first.
func (p *PostgresDriverRepository) ListRoster(ctx context.Context) (_ []*domain.DriverProfile, err error) {
	defer obs.Time(ctx, "drivers.ListRoster")(&err)

	if p.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	query := `
	SELECT
		id::text,
		user_id::text,
		email,
		first_name,
		last_name,
		has_cdl,
		cdl_number,
		to_char(cdl_expiration_date, 'YYYY-MM-DD'),
		is_active,
		created_at
	FROM active_drivers_view
	ORDER BY created_at DESC;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roster: query active_drivers_view: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.DriverProfile, 0, 64)
	for rows.Next() {
		var d domain.DriverProfile
		var number, expiration sql.NullString
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Email,
			&d.FirstName,
			&d.LastName,
			&d.HasCDL,
			&number,
			&expiration,
			&d.IsActive,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list roster: scan row: %w", err)
		}
		d.CDLNumber = nullString(number)
		d.CDLExpirationDate = nullString(expiration)
		drivers = append(drivers, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roster: row iteration: %w", err)
	}

	return drivers, nil
}

func (p *PostgresDriverRepository) SetActive(ctx context.Context, driverID string, active bool) (err error) {
	defer obs.Time(ctx, "drivers.SetActive")(&err)

	if p.DB == nil {
		return errors.New("driver repository: DB is nil")
	}

	res, err := p.DB.ExecContext(ctx, `
	UPDATE drivers
	SET is_active = $1
	WHERE id = $2;
	`, active, driverID)
	if err != nil {
		return fmt.Errorf("set active: update drivers table: %w", err)
	}

	return expectOneRow(res, "set active", driverID)
}

func (p *PostgresDriverRepository) UpdateCDL(ctx context.Context, driverID string, u domain.CDLUpdate) (err error) {
	defer obs.Time(ctx, "drivers.UpdateCDL")(&err)

	if p.DB == nil {
		return errors.New("driver repository: DB is nil")
	}

	res, err := p.DB.ExecContext(ctx, `
	UPDATE drivers
	SET has_cdl = $1,
		cdl_number = $2,
		cdl_expiration_date = $3::date
	WHERE id = $4;
	`, u.HasCDL, u.Number, u.ExpirationDate, driverID)
	if err != nil {
		return fmt.Errorf("update cdl: update drivers table: %w", err)
	}

	return expectOneRow(res, "update cdl", driverID)
}

func expectOneRow(res sql.Result, op, driverID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: driver %s: %w", op, driverID, domain.ErrDriverNotFound)
	}
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

package repositories

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/db"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// openTestDB connects to TEST_DATABASE_URL and creates the schema.
// Tests that need Postgres are skipped when it is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	sqlDB, err := db.Open(ctx, url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := InitSchema(ctx, sqlDB); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return sqlDB
}

func mustExec(t *testing.T, sqlDB *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := sqlDB.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

type fixture struct {
	storeID  string
	driverID string
	userID   string
}

// insertFixture adds one store with supplies and one active driver holding a CDL.
func insertFixture(t *testing.T, sqlDB *sql.DB, createdAt time.Time) fixture {
	t.Helper()

	f := fixture{storeID: uuid.NewString(), driverID: uuid.NewString(), userID: uuid.NewString()}
	mustExec(t, sqlDB, `INSERT INTO stores (id, name) VALUES ($1, 'Test Store');`, f.storeID)
	mustExec(t, sqlDB, `
	INSERT INTO store_supplies (store_id, sleeves, caps, canvases, totes, hardlines_raw, softlines_raw)
	VALUES ($1, 10, 4, 2, 6, 3, 1);`, f.storeID)
	mustExec(t, sqlDB, `
	INSERT INTO drivers (id, user_id, email, first_name, last_name, has_cdl, cdl_number, cdl_expiration_date, created_at)
	VALUES ($1, $2, 'test@example.com', 'Test', 'Driver', true, 'C1', '2027-01-31', $3);`,
		f.driverID, f.userID, createdAt)
	return f
}

func insertRun(t *testing.T, sqlDB *sql.DB, f fixture, status domain.RunStatus, createdAt time.Time) string {
	t.Helper()

	id := uuid.NewString()
	mustExec(t, sqlDB, `
	INSERT INTO delivery_runs (id, driver_id, store_id, run_type, status, created_at)
	VALUES ($1, $2, $3, 'Box Truck', $4, $5);`, id, f.driverID, f.storeID, string(status), createdAt)
	return id
}

func TestRepositoriesWithoutDB(t *testing.T) {
	ctx := context.Background()
	drivers := &PostgresDriverRepository{}

	if err := drivers.SetActive(ctx, "d1", false); err == nil {
		t.Fatalf("SetActive: expected error")
	}
	if err := drivers.UpdateCDL(ctx, "d1", domain.CDLUpdate{}); err == nil {
		t.Fatalf("UpdateCDL: expected error")
	}
	if _, err := drivers.ListRoster(ctx); err == nil {
		t.Fatalf("ListRoster: expected error")
	}
	if _, err := (&PostgresRunRepository{}).ListRunsForDriver(ctx, "d1"); err == nil {
		t.Fatalf("ListRunsForDriver: expected error")
	}
	if err := (&PostgresLoadingRepository{}).CompleteLoading(ctx, domain.LoadingRecord{}); err == nil {
		t.Fatalf("CompleteLoading: expected error")
	}
}

func TestPostgresRunsOldestFirstWithoutCompleted(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	f := insertFixture(t, sqlDB, base)

	later := insertRun(t, sqlDB, f, domain.StatusPreloaded, base.Add(2*time.Hour))
	earlier := insertRun(t, sqlDB, f, domain.StatusUpcoming, base.Add(time.Hour))
	insertRun(t, sqlDB, f, domain.StatusCompleted, base)

	repo := NewPostgresRunRepository(sqlDB)
	runs, err := repo.ListRunsForDriver(ctx, f.driverID)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != earlier || runs[1].ID != later {
		t.Fatalf("expected %s then %s, got %s then %s", earlier, later, runs[0].ID, runs[1].ID)
	}
	if runs[0].StoreName != "Test Store" || runs[0].Store == nil {
		t.Fatalf("expected store joined, got %+v", runs[0])
	}

	if _, err := repo.GetRunForDriver(ctx, uuid.NewString(), earlier); !errors.Is(err, domain.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound for another driver, got %v", err)
	}
}

func TestPostgresRosterNewestFirst(t *testing.T) {
	sqlDB := openTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)
	older := insertFixture(t, sqlDB, base)
	newer := insertFixture(t, sqlDB, base.Add(time.Minute))

	drivers, err := NewPostgresDriverRepository(sqlDB).ListRoster(context.Background())
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}

	pos := map[string]int{}
	for i, d := range drivers {
		pos[d.ID] = i
	}
	iOld, okOld := pos[older.driverID]
	iNew, okNew := pos[newer.driverID]
	if !okOld || !okNew {
		t.Fatalf("expected both test drivers in roster")
	}
	if iNew > iOld {
		t.Fatalf("expected newer driver before older one")
	}
	if d := drivers[iOld]; d.CDLExpirationDate == nil || *d.CDLExpirationDate != "2027-01-31" {
		t.Fatalf("expected expiration 2027-01-31, got %v", d.CDLExpirationDate)
	}
}

func TestPostgresDriverUpdates(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()
	f := insertFixture(t, sqlDB, time.Now().UTC())
	repo := NewPostgresDriverRepository(sqlDB)

	if err := repo.SetActive(ctx, f.driverID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := repo.UpdateCDL(ctx, f.driverID, domain.NewCDLUpdate(false, "C9", "2030-01-01")); err != nil {
		t.Fatalf("update cdl: %v", err)
	}

	var active, hasCDL bool
	var number, expiration sql.NullString
	err := sqlDB.QueryRowContext(ctx, `
	SELECT is_active, has_cdl, cdl_number, cdl_expiration_date::text
	FROM drivers WHERE id = $1;`, f.driverID).Scan(&active, &hasCDL, &number, &expiration)
	if err != nil {
		t.Fatalf("read driver: %v", err)
	}
	if active || hasCDL || number.Valid || expiration.Valid {
		t.Fatalf("expected inactive driver with CDL columns cleared, got active=%v has=%v number=%v exp=%v",
			active, hasCDL, number, expiration)
	}

	if err := repo.SetActive(ctx, uuid.NewString(), true); !errors.Is(err, domain.ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestPostgresCompleteLoading(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()
	f := insertFixture(t, sqlDB, time.Now().UTC())
	runID := insertRun(t, sqlDB, f, domain.StatusUpcoming, time.Now().UTC())

	required, err := NewPostgresSupplyRepository(sqlDB).RequiredForStore(ctx, f.storeID)
	if err != nil {
		t.Fatalf("required: %v", err)
	}
	if required.Sleeves != 10 {
		t.Fatalf("expected required sleeves 10, got %d", required.Sleeves)
	}

	repo := NewPostgresLoadingRepository(sqlDB)
	rec := domain.LoadingRecord{
		RunID:       runID,
		DriverID:    f.driverID,
		Loaded:      domain.SupplyQuantities{Sleeves: 7},
		CompletedAt: time.Now().UTC(),
	}
	if err := repo.CompleteLoading(ctx, rec); err != nil {
		t.Fatalf("complete: %v", err)
	}

	var status string
	var sleeves int
	err = sqlDB.QueryRowContext(ctx, `
	SELECT r.status, l.sleeves
	FROM delivery_runs r JOIN run_loadings l ON l.run_id = r.id
	WHERE r.id = $1;`, runID).Scan(&status, &sleeves)
	if err != nil {
		t.Fatalf("read run: %v", err)
	}
	if status != string(domain.StatusPreloaded) || sleeves != 7 {
		t.Fatalf("expected Preloaded with 7 sleeves, got %s %d", status, sleeves)
	}

	// The run is no longer Upcoming, so a second completion is refused and rolled back.
	rec.Loaded.Sleeves = 9
	if err := repo.CompleteLoading(ctx, rec); !errors.Is(err, domain.ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled, got %v", err)
	}
	if err := sqlDB.QueryRowContext(ctx, `SELECT sleeves FROM run_loadings WHERE run_id = $1;`, runID).Scan(&sleeves); err != nil {
		t.Fatalf("read loading: %v", err)
	}
	if sleeves != 7 {
		t.Fatalf("expected rolled back sleeves 7, got %d", sleeves)
	}
}

package services

import (
	"context"
	"delivery-ops-service/internal/adapters/memory"
	"delivery-ops-service/internal/domain"
	"errors"
	"testing"
	"time"
)

type loadingFixture struct {
	svc      *LoadingService
	runs     *memory.RunRepository
	loadings *memory.LoadingRepository
	forms    *memory.LoadingFormStore
	supplies *memory.SupplyRepository
}

func newLoadingFixture() *loadingFixture {
	runs := testRuns()
	loadings := memory.NewLoadingRepository(runs)
	forms := memory.NewLoadingFormStore()
	supplies := &memory.SupplyRepository{Required: map[string]domain.SupplyQuantities{
		"s1": {Sleeves: 10, Caps: 4, Canvases: 2, Totes: 6, HardlinesRaw: 3, SoftlinesRaw: 1},
	}}
	now := base.Add(30 * time.Minute)

	return &loadingFixture{
		svc: &LoadingService{
			Drivers:  testDrivers(),
			Runs:     runs,
			Supplies: supplies,
			Loadings: loadings,
			Forms:    forms,
			Log:      nopLog(),
			Now:      func() time.Time { return now },
		},
		runs:     runs,
		loadings: loadings,
		forms:    forms,
		supplies: supplies,
	}
}

func TestStartLoadingOpensZeroedForm(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	form, err := fx.svc.StartLoading(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.RunID != "r1" || form.StoreName != "Downtown" {
		t.Fatalf("unexpected form header: %+v", form)
	}
	if form.Required.Sleeves != 10 {
		t.Fatalf("expected required sleeves 10, got %d", form.Required.Sleeves)
	}
	if form.Loaded != (domain.SupplyQuantities{}) {
		t.Fatalf("expected zero loaded counts, got %+v", form.Loaded)
	}

	stored, err := fx.svc.CurrentForm(ctx, "u1")
	if err != nil {
		t.Fatalf("current form: %v", err)
	}
	if stored.RunID != "r1" {
		t.Fatalf("expected stored form for r1, got %s", stored.RunID)
	}
}

func TestStartLoadingRequiresUpcoming(t *testing.T) {
	fx := newLoadingFixture()

	_, err := fx.svc.StartLoading(context.Background(), "u1", "r2")
	if !errors.Is(err, domain.ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled, got %v", err)
	}
}

func TestStartLoadingOtherDriversRun(t *testing.T) {
	fx := newLoadingFixture()

	_, err := fx.svc.StartLoading(context.Background(), "u1", "r4")
	if !errors.Is(err, domain.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStartLoadingRequiredFetchFailureLeavesZeros(t *testing.T) {
	fx := newLoadingFixture()
	fx.supplies.Err = errors.New("permission denied")

	form, err := fx.svc.StartLoading(context.Background(), "u1", "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Required != (domain.SupplyQuantities{}) {
		t.Fatalf("expected zero required counts, got %+v", form.Required)
	}
}

func TestStartLoadingReopenResetsLoaded(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.SetQuantity(ctx, "u1", "caps", "9"); err != nil {
		t.Fatalf("set: %v", err)
	}
	form, err := fx.svc.StartLoading(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if form.Loaded.Caps != 0 {
		t.Fatalf("expected caps reset to 0, got %d", form.Loaded.Caps)
	}
}

func TestSetQuantityShortfall(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	form, err := fx.svc.SetQuantity(ctx, "u1", "sleeves", "7")
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	var sleeves domain.FieldDiscrepancy
	for _, d := range form.Discrepancies() {
		if d.Field == domain.FieldSleeves {
			sleeves = d
		}
	}
	if sleeves.Difference != -3 || sleeves.Tone != domain.ToneShortfall {
		t.Fatalf("expected -3 shortfall, got %d %s", sleeves.Difference, sleeves.Tone)
	}
}

func TestSetQuantityCoercesNonNumeric(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.SetQuantity(ctx, "u1", "totes", "5"); err != nil {
		t.Fatalf("set: %v", err)
	}
	form, err := fx.svc.SetQuantity(ctx, "u1", "totes", "abc")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if form.Loaded.Totes != 0 {
		t.Fatalf("expected totes 0, got %d", form.Loaded.Totes)
	}
}

func TestSetQuantityErrors(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.SetQuantity(ctx, "u1", "sleeves", "1"); !errors.Is(err, domain.ErrNoOpenForm) {
		t.Fatalf("expected ErrNoOpenForm, got %v", err)
	}
	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.SetQuantity(ctx, "u1", "pallets", "1"); !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCompleteStoresRecordAndAdvancesRun(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.SetQuantity(ctx, "u1", "sleeves", "10"); err != nil {
		t.Fatalf("set: %v", err)
	}

	rec, err := fx.svc.Complete(ctx, "u1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if rec.DriverID != "d1" || rec.Loaded.Sleeves != 10 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if got := fx.runs.Status("r1"); got != domain.StatusPreloaded {
		t.Fatalf("expected run Preloaded, got %s", got)
	}
	if _, ok := fx.loadings.Records["r1"]; !ok {
		t.Fatalf("expected loading record for r1")
	}
	if _, err := fx.svc.CurrentForm(ctx, "u1"); !errors.Is(err, domain.ErrNoOpenForm) {
		t.Fatalf("expected form closed, got %v", err)
	}
}

func TestCompleteRunMovedOn(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	fx.runs.SetStatus("r1", domain.StatusInTransit)

	if _, err := fx.svc.Complete(ctx, "u1"); !errors.Is(err, domain.ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled, got %v", err)
	}
	if _, err := fx.svc.CurrentForm(ctx, "u1"); err != nil {
		t.Fatalf("expected form kept open, got %v", err)
	}
}

func TestCancelDiscardsFormOnly(t *testing.T) {
	fx := newLoadingFixture()
	ctx := context.Background()

	if _, err := fx.svc.StartLoading(ctx, "u1", "r1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.SetQuantity(ctx, "u1", "caps", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := fx.svc.Cancel(ctx, "u1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := fx.svc.CurrentForm(ctx, "u1"); !errors.Is(err, domain.ErrNoOpenForm) {
		t.Fatalf("expected form gone, got %v", err)
	}
	if got := fx.runs.Status("r1"); got != domain.StatusUpcoming {
		t.Fatalf("expected run still Upcoming, got %s", got)
	}
	if len(fx.loadings.Records) != 0 {
		t.Fatalf("expected no loading records, got %d", len(fx.loadings.Records))
	}
	if fx.supplies.Required["s1"].Caps != 4 {
		t.Fatalf("required quantities changed")
	}

	if err := fx.svc.Cancel(ctx, "u1"); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
}

package services

import (
	"delivery-ops-service/internal/adapters/memory"
	"delivery-ops-service/internal/domain"
	"time"

	"go.uber.org/zap"
)

var base = time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func testDrivers() *memory.DriverRepository {
	return memory.NewDriverRepository(
		&domain.DriverProfile{
			ID: "d1", UserID: "u1", Email: "ana@example.com",
			FirstName: "Ana", LastName: "Lopez", IsActive: true,
			HasCDL: true, CDLNumber: strPtr("C123"), CDLExpirationDate: strPtr("2027-01-31"),
			CreatedAt: base,
		},
		&domain.DriverProfile{
			ID: "d2", UserID: "u2", Email: "ben@example.com",
			FirstName: "Ben", LastName: "Ode", IsActive: false,
			CreatedAt: base.Add(time.Hour),
		},
	)
}

func testRuns() *memory.RunRepository {
	return memory.NewRunRepository(
		&domain.DeliveryRun{ID: "r2", DriverID: "d1", StoreID: "s1", StoreName: "Downtown", Status: domain.StatusPreloaded, CreatedAt: base.Add(time.Hour)},
		&domain.DeliveryRun{ID: "r1", DriverID: "d1", StoreID: "s1", StoreName: "Downtown", Status: domain.StatusUpcoming, CreatedAt: base},
		&domain.DeliveryRun{ID: "r3", DriverID: "d1", StoreID: "s1", StoreName: "Downtown", Status: domain.StatusCompleted, CreatedAt: base},
		&domain.DeliveryRun{ID: "r4", DriverID: "d2", StoreID: "s1", StoreName: "Downtown", Status: domain.StatusUpcoming, CreatedAt: base},
	)
}

func nopLog() *zap.Logger { return zap.NewNop() }

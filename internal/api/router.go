package api

import (
	"delivery-ops-service/internal/api/handlers"
	"delivery-ops-service/internal/platform/auth"
	"delivery-ops-service/internal/ports"
	"delivery-ops-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is composed from.
type Deps struct {
	Runs      *services.RunService
	Loading   *services.LoadingService
	Roster    *services.RosterService
	Exporter  ports.RosterExporter
	JWTSecret []byte
	Log       *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Dashboard routes need an authenticated user; roster routes need an admin.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	runHandler := &handlers.RunHandler{Runs: d.Runs}
	loadingHandler := &handlers.LoadingHandler{Loading: d.Loading}
	rosterHandler := &handlers.RosterHandler{Roster: d.Roster, Exporter: d.Exporter}

	user := requireAuth(d.JWTSecret)
	admin := func(h http.HandlerFunc) http.Handler {
		return user(requireRole(auth.RoleAdmin, h))
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.Handle("GET /runs", user(http.HandlerFunc(runHandler.List)))
	mux.Handle("POST /runs/{id}/loading", user(http.HandlerFunc(loadingHandler.Start)))
	mux.Handle("GET /loading", user(http.HandlerFunc(loadingHandler.Current)))
	mux.Handle("PATCH /loading/quantities", user(http.HandlerFunc(loadingHandler.SetQuantity)))
	mux.Handle("POST /loading/complete", user(http.HandlerFunc(loadingHandler.Complete)))
	mux.Handle("POST /loading/cancel", user(http.HandlerFunc(loadingHandler.Cancel)))

	mux.Handle("GET /drivers", admin(rosterHandler.List))
	mux.Handle("GET /drivers/export", admin(rosterHandler.Export))
	mux.Handle("POST /drivers/{id}/active", admin(rosterHandler.ToggleActive))
	mux.Handle("PUT /drivers/{id}/cdl", admin(rosterHandler.UpdateCDL))

	return requestID(loggingMiddleware(d.Log, mux))
}

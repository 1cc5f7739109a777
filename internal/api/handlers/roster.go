package handlers

import (
	"delivery-ops-service/internal/api/dto"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"delivery-ops-service/internal/ports"
	"delivery-ops-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RosterHandler serves the back-office driver management screen.
type RosterHandler struct {
	Roster   *services.RosterService
	Exporter ports.RosterExporter
}

func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	view := h.Roster.Roster(r.Context(), user.ID, queryBool(r, "show_inactive"))
	writeJSON(w, r, http.StatusOK, toRosterResponse(view))
}

func (h *RosterHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	driverID, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.ToggleActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.IsActive == nil {
		writeError(w, r, http.StatusBadRequest, "is_active is required")
		return
	}

	view, err := h.Roster.ToggleActive(r.Context(), user.ID, driverID, *req.IsActive, queryBool(r, "show_inactive"))
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRosterResponse(view))
}

func (h *RosterHandler) UpdateCDL(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	driverID, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateCDLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.Roster.UpdateCDL(r.Context(), user.ID, driverID,
		req.HasCDL, req.CDLNumber, req.CDLExpirationDate, queryBool(r, "show_inactive"))
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRosterResponse(view))
}

func (h *RosterHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	drivers, err := h.Roster.FilteredDrivers(r.Context(), user.ID, queryBool(r, "show_inactive"))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	filename := fmt.Sprintf("drivers-%s.%s", time.Now().Format("20060102"), h.Exporter.FileExtension())
	w.Header().Set("Content-Type", h.Exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := h.Exporter.WriteRoster(w, drivers); err != nil {
		// Headers are already sent; the client sees a truncated file.
		zap.L().Error("export roster failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}

// writeMutationError answers a failed roster write. Unknown drivers are 404;
// every other failure is a bad gateway carrying the recorded page error.
func writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrDriverNotFound) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, r, http.StatusBadGateway, err.Error())
}

func toRosterResponse(v services.RosterView) dto.RosterResponse {
	res := dto.RosterResponse{
		ShowInactive: v.ShowInactive,
		Drivers:      make([]dto.RosterRowResponse, 0, len(v.Drivers)),
		Error:        v.Error,
	}

	for _, d := range v.Drivers {
		row := dto.RosterRowResponse{
			ID:                d.ID,
			Name:              d.FullName(),
			Email:             d.Email,
			HasCDL:            d.HasCDL,
			CDLNumber:         d.CDLNumber,
			CDLExpirationDate: d.CDLExpirationDate,
			CDLStatus:         "No CDL",
			IsActive:          d.IsActive,
			Status:            "Inactive",
			ToggleLabel:       "Activate",
			CreatedAt:         d.CreatedAt,
		}
		if d.HasCDL {
			row.CDLStatus = "CDL"
			if d.CDLExpirationDate != nil && *d.CDLExpirationDate != "" {
				row.CDLExpires = d.CDLExpirationDate
			}
		}
		if d.IsActive {
			row.Status = "Active"
			row.ToggleLabel = "Deactivate"
		}
		res.Drivers = append(res.Drivers, row)
	}

	return res
}

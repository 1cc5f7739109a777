package handlers

import (
	"delivery-ops-service/internal/api/dto"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/services"
	"net/http"
)

// LoadingHandler exposes the loading form workflow of the caller.
type LoadingHandler struct {
	Loading *services.LoadingService
}

func (h *LoadingHandler) Start(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	runID, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.Loading.StartLoading(r.Context(), user.ID, runID)
	if err != nil {
		writeServiceError(w, r, "start loading", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toFormResponse(form))
}

func (h *LoadingHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	form, err := h.Loading.CurrentForm(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, "current form", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toFormResponse(form))
}

func (h *LoadingHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.SetQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.Loading.SetQuantity(r.Context(), user.ID, req.Field, string(req.Value))
	if err != nil {
		writeServiceError(w, r, "set quantity", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toFormResponse(form))
}

func (h *LoadingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rec, err := h.Loading.Complete(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, "complete loading", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CompleteLoadingResponse{
		RunID:       rec.RunID,
		Status:      string(domain.StatusPreloaded),
		Loaded:      toQuantities(rec.Loaded),
		CompletedAt: rec.CompletedAt,
	})
}

func (h *LoadingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Loading.Cancel(r.Context(), user.ID); err != nil {
		writeServiceError(w, r, "cancel loading", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toQuantities(q domain.SupplyQuantities) dto.QuantitiesResponse {
	return dto.QuantitiesResponse(q)
}

func toFormResponse(f *domain.LoadingForm) dto.LoadingFormResponse {
	res := dto.LoadingFormResponse{
		RunID:     f.RunID,
		StoreName: f.StoreName,
		Required:  toQuantities(f.Required),
		Loaded:    toQuantities(f.Loaded),
	}

	for _, d := range f.Discrepancies() {
		res.Discrepancies = append(res.Discrepancies, dto.DiscrepancyResponse{
			Field:      string(d.Field),
			Label:      d.Label,
			Required:   d.Required,
			Loaded:     d.Loaded,
			Difference: d.Difference,
			Tone:       string(d.Tone),
		})
	}

	return res
}

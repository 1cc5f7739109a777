package handlers

import (
	"delivery-ops-service/internal/api/dto"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/services"
	"net/http"
)

// RunHandler serves the driver dashboard run list.
type RunHandler struct {
	Runs *services.RunService
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	runs := h.Runs.ListRuns(r.Context(), user.ID)

	res := dto.ListRunsResponse{Runs: make([]dto.RunCardResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunCard(run))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toRunCard(run *domain.DeliveryRun) dto.RunCardResponse {
	card := dto.RunCardResponse{
		ID:        run.ID,
		StoreID:   run.StoreID,
		StoreName: run.StoreName,
		RunType:   string(run.RunType),
		Status:    string(run.Status),
		StartTime: run.StartTime,
		CreatedAt: run.CreatedAt,
	}

	if run.StartTime != nil {
		label := run.StartTime.Format("15:04")
		card.StartedAt = &label
	}
	if run.Store != nil {
		card.Store = &dto.StoreResponse{
			ID:      run.Store.ID,
			Name:    run.Store.Name,
			Address: run.Store.Address,
		}
	}

	for _, a := range domain.RunActions(run.Status) {
		card.Actions = append(card.Actions, dto.RunActionResponse{
			Name:    string(a.Name),
			Label:   a.Label,
			Enabled: a.Enabled,
			Wired:   a.Wired,
		})
	}

	return card
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type UpdateHandler struct {
	updates  *app.UpdateService
	notifier *app.UpdateNotifier
}

func NewUpdateHandler(updates *app.UpdateService, notifier *app.UpdateNotifier) *UpdateHandler {
	return &UpdateHandler{updates: updates, notifier: notifier}
}

func (h *UpdateHandler) Routes(r chi.Router) {
	r.Post("/update", h.update)
	if h.notifier != nil {
		r.Get("/update/recent", h.recent)
	}
}

type updateRequest struct {
	Names []string `json:"names,omitempty"`
}

type updateResponse struct {
	Results []app.UpdateResult `json:"results"`
}

func (h *UpdateHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	results, err := h.updates.Update(r.Context(), req.Names...)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, updateResponse{Results: results})
}

type recentResponse struct {
	Items []app.Notification `json:"items"`
}

func (h *UpdateHandler) recent(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, recentResponse{Items: h.notifier.Recent()})
}

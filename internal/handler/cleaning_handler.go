package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"house-admin/internal/model"
	"house-admin/internal/service"
	"house-admin/pkg/apierror"
)

type CleaningHandler struct {
	service *service.CleaningService
}

func NewCleaningHandler(service *service.CleaningService) *CleaningHandler {
	return &CleaningHandler{service: service}
}

func (h *CleaningHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tasks, &model.Meta{Total: len(tasks)})
}

func (h *CleaningHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "task_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, task, nil)
}

func (h *CleaningHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CleaningTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	task, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, task, nil)
}

func (h *CleaningHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkDone(r.Context(), chi.URLParam(r, "task_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"done": true}, nil)
}

func (h *CleaningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "task_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"house-admin/internal/model"
	"house-admin/internal/service"
	"house-admin/pkg/apierror"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, payments, &model.Meta{Total: len(payments)})
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.Get(r.Context(), chi.URLParam(r, "payment_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, payment, nil)
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	payment, err := h.service.Record(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, payment, nil)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "payment_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

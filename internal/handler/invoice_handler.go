package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"house-admin/internal/middleware"
	"house-admin/internal/model"
	"house-admin/internal/service"
	"house-admin/pkg/apierror"
)

type InvoiceHandler struct {
	service *service.InvoiceService
}

func NewInvoiceHandler(service *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, invoices, &model.Meta{Total: len(invoices)})
}

// ListMine returns the invoices belonging to the calling principal.
func (h *InvoiceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	invoices, err := h.service.ListForEmail(r.Context(), principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, invoices, &model.Meta{Total: len(invoices)})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.service.Get(r.Context(), chi.URLParam(r, "invoice_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, invoice, nil)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	invoice, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, invoice, nil)
}

func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "invoice_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"paid": true}, nil)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "invoice_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

package handler

import (
	"context"
	"net/http"

	"house-admin/internal/model"
)

type accountLister interface {
	List(ctx context.Context) ([]model.Account, error)
}

// AccountHandler exposes the account directory to admins; provisioning itself
// happens out of band.
type AccountHandler struct {
	accounts accountLister
}

func NewAccountHandler(accounts accountLister) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, accounts, &model.Meta{Total: len(accounts)})
}

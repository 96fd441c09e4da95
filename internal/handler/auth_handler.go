package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"house-admin/internal/middleware"
	"house-admin/internal/model"
	"house-admin/internal/service"
	"house-admin/pkg/apierror"
)

type AuthHandler struct {
	auth  *service.AuthService
	reset *service.PasswordResetService
}

func NewAuthHandler(auth *service.AuthService, reset *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// ForgotPassword issues a reset token. The raw token is not echoed in the
// response body; delivery happens through the notifier.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if _, err := h.reset.CreateResetToken(r.Context(), payload.Email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"sent": true}, nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	payload.Token = strings.TrimSpace(payload.Token)
	if payload.Token == "" {
		writeError(w, apierror.New("BAD_REQUEST", "token is required", "token", http.StatusBadRequest))
		return
	}

	if err := h.reset.ResetPassword(r.Context(), payload.Token, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"reset": true}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	writeSuccess(w, http.StatusOK, principal, nil)
}

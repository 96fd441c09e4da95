package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"house-admin/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*model.AuthClaims, error)
}

type accountResolver interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
}

type contextKey string

const principalContextKey contextKey = "principal"

// authStep is one (predicate, action) pair of the authentication chain. The
// chain is evaluated in order until a step claims the request, which keeps the
// bypass rules auditable as a flat list instead of nested conditionals.
type authStep struct {
	matches func(r *http.Request) bool
	serve   func(next http.Handler, w http.ResponseWriter, r *http.Request)
}

// AuthMiddleware establishes the request-scoped security principal. It never
// rejects a request itself: any token failure is logged and the request
// continues unauthenticated, leaving the final verdict to the route guards.
type AuthMiddleware struct {
	validator tokenValidator
	accounts  accountResolver
	bypass    []string
	steps     []authStep
}

func NewAuthMiddleware(validator tokenValidator, accounts accountResolver) *AuthMiddleware {
	m := &AuthMiddleware{
		validator: validator,
		accounts:  accounts,
		bypass: []string{
			"/api/v1/auth",
			"/health",
			"/metrics",
			"/debug",
		},
	}

	m.steps = []authStep{
		{matches: m.isBypassed, serve: passThrough},
		{matches: noBearerToken, serve: passThrough},
		{matches: anyRequest, serve: m.authenticate},
	}

	return m
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, step := range m.steps {
			if step.matches(r) {
				step.serve(next, w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) isBypassed(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}

	path := strings.ToLower(r.URL.Path)
	for _, prefix := range m.bypass {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func noBearerToken(r *http.Request) bool {
	return bearerToken(r) == ""
}

func anyRequest(*http.Request) bool {
	return true
}

func passThrough(next http.Handler, w http.ResponseWriter, r *http.Request) {
	next.ServeHTTP(w, r)
}

// authenticate validates the presented token and attaches a principal. Every
// failure path degrades to an unauthenticated request; downstream guards
// translate that into 401/403 where a role is actually required.
func (m *AuthMiddleware) authenticate(next http.Handler, w http.ResponseWriter, r *http.Request) {
	claims, err := m.validator.ValidateToken(bearerToken(r))
	if err != nil {
		slog.Warn("session token rejected", "path", r.URL.Path, "error", err)
		next.ServeHTTP(w, r)
		return
	}

	// Re-resolve the subject so a token for a since-deleted account does not
	// authenticate anyone.
	account, err := m.accounts.FindByEmail(r.Context(), claims.Email)
	if err != nil {
		slog.Warn("token subject no longer resolves", "email", claims.Email)
		next.ServeHTTP(w, r)
		return
	}

	if !strings.EqualFold(strings.TrimSpace(account.Email), claims.Email) {
		slog.Warn("token subject mismatch", "token_email", claims.Email, "account_email", account.Email)
		next.ServeHTTP(w, r)
		return
	}

	// First writer wins: an earlier stage may already have set a principal.
	if _, ok := PrincipalFromContext(r.Context()); ok {
		next.ServeHTTP(w, r)
		return
	}

	role := model.NormalizeRole(string(account.Role))
	principal := &model.Principal{
		Email:     claims.Email,
		Role:      role,
		Authority: role.Authority(),
	}

	ctx := context.WithValue(r.Context(), principalContextKey, principal)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequireAuth rejects requests that carry no principal.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			writeGuardError(w, "UNAUTHORIZED", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles rejects requests whose principal is missing or whose role is
// not in the allowed set.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	roleSet := map[model.Role]struct{}{}
	for _, role := range allowed {
		roleSet[model.NormalizeRole(string(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeGuardError(w, "UNAUTHORIZED", "authentication required")
				return
			}

			if _, exists := roleSet[principal.Role]; !exists {
				writeGuardError(w, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Intended for
// upstream stages and tests that establish identity before the authenticator
// runs.
func WithPrincipal(ctx context.Context, principal *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func writeGuardError(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	if code == "FORBIDDEN" {
		w.WriteHeader(http.StatusForbidden)
	} else {
		w.WriteHeader(http.StatusUnauthorized)
	}

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}

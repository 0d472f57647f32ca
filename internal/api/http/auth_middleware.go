package http

import (
	"net/http"
	"strings"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/security"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates the operator and attaches the operator id to the request context.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if config.GetSecurityLevel(r.URL.Path) == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected operator token", "path", r.URL.Path, "error", err)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token: " + err.Error()})
			return
		}

		ctx := security.ContextWithOperator(r.Context(), claims.OperatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

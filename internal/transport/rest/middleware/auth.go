package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
)

type contextKey string

const (
	UserIDKey contextKey = "userId"
)

// TokenHeader carries the session token on authenticated requests
const TokenHeader = "x-auth-token"

// TokenVerifier resolves a token to the user id it was issued for
type TokenVerifier interface {
	VerifyToken(token string) (primitive.ObjectID, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireUser rejects requests without a valid token
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			writeUnauthorized(w, "no token, authorization denied")
			return
		}

		userID, err := m.verifier.VerifyToken(token)
		if err != nil {
			writeUnauthorized(w, "token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalUser attaches the user when a valid token is present and never rejects
func (m *AuthMiddleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := ExtractToken(r); token != "" {
			if userID, err := m.verifier.VerifyToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) (primitive.ObjectID, bool) {
	v, ok := ctx.Value(UserIDKey).(primitive.ObjectID)
	return v, ok && !v.IsZero()
}

// ExtractToken reads the x-auth-token header, falling back to a bearer token
func ExtractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(model.ErrorResponse{Status: http.StatusUnauthorized, Message: msg})
}

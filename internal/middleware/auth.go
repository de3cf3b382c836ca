package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/pkg/identity"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	ClaimsKey    contextKey = "claims"
	TokenKey     contextKey = "access_token"
	RequestIDKey contextKey = "request_id"
)

// TokenVerifier validates identity-provider access tokens.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*identity.Claims, error)
}

// Auth returns middleware that validates the bearer token against the
// identity provider's verification key. A missing or expired token yields
// 401 so the client can run its re-login flow.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, identity.ErrExpiredToken) {
					response.Unauthorized(w, "Session expired. Please sign in again.")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, parseUserID(claims.Subject))
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			ctx = context.WithValue(ctx, TokenKey, parts[1])

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches identity to the context when a valid bearer token is
// present and lets the request through anonymously otherwise. Used on routes
// that serve both guests and signed-in users.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, parseUserID(claims.Subject))
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			ctx = context.WithValue(ctx, TokenKey, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseUserID(subject string) uuid.UUID {
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetClaims extracts the verified token claims from context
func GetClaims(ctx context.Context) *identity.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*identity.Claims); ok {
		return claims
	}
	return nil
}

// GetAccessToken extracts the raw bearer token from context
func GetAccessToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

// RequireRole returns middleware that checks realm roles before the handler
// runs. This is the route-guard predicate: authenticated + any listed role.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			for _, role := range roles {
				if claims.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireManager requires a hotel management role
func RequireManager() func(http.Handler) http.Handler {
	return RequireRole("admin", "hotel_manager", "super_admin")
}

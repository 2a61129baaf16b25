package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate validates the Bearer access token and stores its claims in
// the request context.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				deny(w, http.StatusUnauthorized, apperr.KindUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				deny(w, http.StatusUnauthorized, apperr.KindUnauthorized, "invalid authorization format")
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, parts[1])
			if err != nil {
				deny(w, http.StatusUnauthorized, apperr.KindUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRestaurant rejects requests whose {rid} path parameter is not the
// restaurant in the caller's token. Staff accounts never span restaurants.
func RequireRestaurant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			deny(w, http.StatusUnauthorized, apperr.KindUnauthorized, "not authenticated")
			return
		}

		ridStr := chi.URLParam(r, "rid")
		if ridStr == "" {
			deny(w, http.StatusBadRequest, apperr.KindInvalidRequest, "missing restaurant ID")
			return
		}

		rid, err := uuid.Parse(ridStr)
		if err != nil {
			deny(w, http.StatusBadRequest, apperr.KindInvalidRequest, "invalid restaurant ID")
			return
		}

		if claims.RestaurantID != rid {
			deny(w, http.StatusForbidden, apperr.KindForbidden, "access denied for this restaurant")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole admits staff whose token carries one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				deny(w, http.StatusUnauthorized, apperr.KindUnauthorized, "not authenticated")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			deny(w, http.StatusForbidden, apperr.KindForbidden, "insufficient permissions")
		})
	}
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// deny writes the same error body as the handlers do.
func deny(w http.ResponseWriter, status int, kind apperr.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error_kind": string(kind), "error": msg}) //nolint:errcheck
}

package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/httperr"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Middleware validates the Authorization bearer header and stores the
// verified claims on the request context. Requests without a valid token
// never reach a handler.
func Middleware(codec *TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return httperr.ToHTTP(httperr.Unauthenticated("missing authorization header"))
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return httperr.ToHTTP(httperr.Unauthenticated("invalid authorization format"))
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return httperr.ToHTTP(httperr.Wrap(httperr.KindUnauthenticated, "invalid or expired token", err))
			}

			ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole gates a route group to callers whose role satisfies one of
// the allowed roles. Admin passes every gate.
func RequireRole(allowed ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c.Request().Context())
			if claims == nil {
				return httperr.ToHTTP(httperr.Unauthenticated("authentication required"))
			}
			if !claims.Role.Satisfies(allowed...) {
				return httperr.ToHTTP(httperr.Forbidden("insufficient role"))
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified claims, or nil for an
// unauthenticated context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// ContextWithClaims is used by tests to inject claims directly.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

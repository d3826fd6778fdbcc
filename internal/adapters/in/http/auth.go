package http

import (
	"net/http"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles recognized in access tokens.
const (
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

const principalContextKey = "principal"

// Claims are the custom payload in access tokens issued by the identity
// provider.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	ID   kernel.UUID
	Role string
}

// GenerateToken creates a signed JWT valid for 24h. Used by tests and
// provisioning tooling; the identity provider issues production tokens
// with the same shape.
func GenerateToken(secret []byte, userID kernel.UUID, role string) (string, error) {
	claims := Claims{
		UserID: userID.String(),
		Role:   role,

		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthMiddleware validates the bearer token and stashes the Principal in
// the request context. Requests without a valid token are rejected with
// 401 before any handler runs.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return respondError(c, http.StatusUnauthorized, "missing Authorization header")
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return respondError(c, http.StatusUnauthorized, "invalid auth header")
			}

			token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(_ *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return respondError(c, http.StatusUnauthorized, "invalid or expired token")
			}

			claims, ok := token.Claims.(*Claims)
			if !ok {
				return respondError(c, http.StatusUnauthorized, "invalid token claims")
			}

			id, err := kernel.UUIDFromString(claims.UserID)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(principalContextKey, Principal{ID: id, Role: claims.Role})
			return next(c)
		}
	}
}

// RequireRole rejects authenticated callers whose role does not match.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := principalFrom(c)
			if !ok || principal.Role != role {
				return respondError(c, http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}

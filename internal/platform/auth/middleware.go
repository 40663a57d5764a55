package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const AdminMethodKey contextKey = "admin_method"

// PasswordHeader carries the admin password on write requests.
const PasswordHeader = "X-Admin-Password"

// Credential methods recorded in the request context.
const (
	MethodBearer   = "bearer"
	MethodPassword = "password"
	MethodCLI      = "cli"
)

// credentialFromRequest prefers a bearer token over the password header.
func credentialFromRequest(r *http.Request) (credential, method string) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1]), MethodBearer
		}
		return "", ""
	}
	return r.Header.Get(PasswordHeader), MethodPassword
}

// RequireAdmin rejects requests whose credential the guard does not accept.
// Nothing downstream runs for a rejected request.
func RequireAdmin(guard Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, method := credentialFromRequest(c.Request())
			if credential == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing admin credential")
			}
			ctx := c.Request().Context()
			if guard == nil || !guard.Authorize(ctx, credential) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin credential")
			}

			c.SetRequest(c.Request().WithContext(WithAdminMethod(ctx, method)))
			return next(c)
		}
	}
}

// WithAdminMethod records how the caller proved admin rights.
func WithAdminMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, AdminMethodKey, method)
}

// AdminMethodFromContext returns "" for requests that never passed a guard.
func AdminMethodFromContext(ctx context.Context) string {
	m, _ := ctx.Value(AdminMethodKey).(string)
	return m
}

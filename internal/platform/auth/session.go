package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sessionRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionHandler exchanges the admin password for a session token and
// revokes tokens on logout.
type SessionHandler struct {
	passwords Guard
	issuer    *TokenIssuer
	revoked   *RevocationList
}

// NewSessionHandler returns a handler that logs in against passwords. A nil
// issuer disables the endpoint.
func NewSessionHandler(passwords Guard, issuer *TokenIssuer) *SessionHandler {
	return &SessionHandler{passwords: passwords, issuer: issuer}
}

// WithRevocations enables logout. Tokens revoked through the handler are
// recorded in l, which the token guard must also consult.
func (h *SessionHandler) WithRevocations(l *RevocationList) *SessionHandler {
	h.revoked = l
	return h
}

func (h *SessionHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/admin/session", h.CreateSession)
	api.DELETE("/admin/session", h.DeleteSession)
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	if h.issuer == nil {
		return echo.NewHTTPError(http.StatusNotFound, "admin sessions are disabled")
	}
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Password == "" || h.passwords == nil || !h.passwords.Authorize(c.Request().Context(), req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin credential")
	}
	token, expiresAt, err := h.issuer.Issue(RoleAdmin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusCreated, sessionResponse{Token: token, ExpiresAt: expiresAt})
}

// DeleteSession revokes the bearer token presented with the request.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	if h.issuer == nil || h.revoked == nil {
		return echo.NewHTTPError(http.StatusNotFound, "admin sessions are disabled")
	}
	credential, method := credentialFromRequest(c.Request())
	if credential == "" || method != MethodBearer {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}
	claims, err := h.issuer.Parse(credential)
	if err != nil || h.revoked.IsRevoked(claims.ID) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
	}
	h.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	return c.NoContent(http.StatusNoContent)
}

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRequireAdmin(t *testing.T, guard Guard, header, value string) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/beds/MICU-1", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	}
	err := RequireAdmin(guard)(handler)(c)
	return c, err, called
}

func expectUnauthorized(t *testing.T, err error, called bool) {
	t.Helper()
	if called {
		t.Fatal("handler must not run")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestRequireAdmin_MissingCredential(t *testing.T) {
	_, err, called := runRequireAdmin(t, NewPasswordGuard("pw"), "", "")
	expectUnauthorized(t, err, called)
}

func TestRequireAdmin_WrongPassword(t *testing.T) {
	_, err, called := runRequireAdmin(t, NewPasswordGuard("pw"), PasswordHeader, "nope")
	expectUnauthorized(t, err, called)
}

func TestRequireAdmin_NilGuard(t *testing.T) {
	_, err, called := runRequireAdmin(t, nil, PasswordHeader, "pw")
	expectUnauthorized(t, err, called)
}

func TestRequireAdmin_InvalidAuthorizationFormat(t *testing.T) {
	tests := []string{"Token abc", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"}
	for _, h := range tests {
		t.Run(h, func(t *testing.T) {
			allow := GuardFunc(func(_ context.Context, c string) bool { return c != "" })
			_, err, called := runRequireAdmin(t, allow, "Authorization", h)
			expectUnauthorized(t, err, called)
		})
	}
}

func TestRequireAdmin_Password(t *testing.T) {
	c, err, called := runRequireAdmin(t, NewPasswordGuard("pw"), PasswordHeader, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler should run")
	}
	if m := AdminMethodFromContext(c.Request().Context()); m != MethodPassword {
		t.Errorf("method = %q", m)
	}
}

func TestRequireAdmin_Bearer(t *testing.T) {
	iss := newTestIssuer(t)
	tok, _, _ := iss.Issue("admin")
	guard := AnyGuard{NewPasswordGuard("pw"), NewTokenGuard(iss)}

	c, err, called := runRequireAdmin(t, guard, "Authorization", "Bearer "+tok)
	if err != nil || !called {
		t.Fatalf("expected success, err=%v called=%v", err, called)
	}
	if m := AdminMethodFromContext(c.Request().Context()); m != MethodBearer {
		t.Errorf("method = %q", m)
	}
}

func TestAdminMethodFromContext(t *testing.T) {
	if AdminMethodFromContext(context.Background()) != "" {
		t.Error("expected empty method")
	}
	if m := AdminMethodFromContext(WithAdminMethod(context.Background(), MethodCLI)); m != MethodCLI {
		t.Errorf("method = %q", m)
	}
}

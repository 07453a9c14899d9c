package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return mw(okHandler)(c)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	mw := Middleware(NewTokenCodec("s", time.Hour))
	err := doRequest(t, mw, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_BadScheme(t *testing.T) {
	mw := Middleware(NewTokenCodec("s", time.Hour))
	err := doRequest(t, mw, "Basic dXNlcjpwYXNz")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec := NewTokenCodec("s", time.Hour)
	token, _ := codec.Issue(uuid.New(), "a@x.com", RoleStaff)
	if err := doRequest(t, Middleware(codec), "Bearer "+token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	codec := NewTokenCodec("s", -time.Minute)
	token, _ := codec.Issue(uuid.New(), "a@x.com", RoleStaff)
	err := doRequest(t, Middleware(NewTokenCodec("s", time.Hour)), "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func requireRoleRequest(t *testing.T, role Role, allowed ...Role) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &Claims{UserID: uuid.New(), Email: "a@x.com", Role: role}
	req = req.WithContext(ContextWithClaims(req.Context(), claims))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return RequireRole(allowed...)(okHandler)(c)
}

func TestRequireRole_Allows(t *testing.T) {
	if err := requireRoleRequest(t, RoleDoctor, RoleDoctor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminOverride(t *testing.T) {
	if err := requireRoleRequest(t, RoleAdmin, RoleDoctor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	err := requireRoleRequest(t, RolePatient, RoleAdmin)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := RequireRole(RoleAdmin)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

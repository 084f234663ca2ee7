package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubLimiter struct {
	allow  bool
	checks int
}

func (l *stubLimiter) Check(string) bool {
	l.checks++
	return l.allow
}

type stubAuthorizer struct {
	adminToken string
}

func (a *stubAuthorizer) IsAuthorized(_ context.Context, _ int64, _ string) bool { return false }

func (a *stubAuthorizer) IsTokenAuthorized(_ context.Context, token, _ string) bool {
	return token == a.adminToken
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, header map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRateLimit_Allows(t *testing.T) {
	mw := RateLimit(&stubLimiter{allow: true}, &stubAuthorizer{adminToken: "42"}, 900)
	rec, called := invoke(t, mw, nil)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, called=%v code=%d", called, rec.Code)
	}
}

func TestRateLimit_Denies429(t *testing.T) {
	mw := RateLimit(&stubLimiter{allow: false}, &stubAuthorizer{adminToken: "42"}, 900)
	rec, called := invoke(t, mw, nil)

	if called {
		t.Fatal("next handler must not run when denied")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("code = %d, want 429", rec.Code)
	}
}

func TestRateLimit_AdminTokenBypassesCheck(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	mw := RateLimit(limiter, &stubAuthorizer{adminToken: "42"}, 900)
	rec, called := invoke(t, mw, map[string]string{"X-Admin-Token": "42"})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("admin must bypass, called=%v code=%d", called, rec.Code)
	}
	if limiter.checks != 0 {
		t.Errorf("limiter consulted %d times for bypassed caller, want 0", limiter.checks)
	}
}

func TestRateLimit_WrongTokenStillLimited(t *testing.T) {
	mw := RateLimit(&stubLimiter{allow: false}, &stubAuthorizer{adminToken: "42"}, 900)
	rec, called := invoke(t, mw, map[string]string{"X-Admin-Token": "43"})

	if called || rec.Code != http.StatusTooManyRequests {
		t.Fatalf("wrong token must not bypass, called=%v code=%d", called, rec.Code)
	}
}

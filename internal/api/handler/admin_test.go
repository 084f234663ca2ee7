package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubAuthorizer struct {
	adminToken string
	asked      []string // actions checked
}

func (a *stubAuthorizer) IsAuthorized(_ context.Context, _ int64, _ string) bool { return false }

func (a *stubAuthorizer) IsTokenAuthorized(_ context.Context, token, action string) bool {
	a.asked = append(a.asked, action)
	return token == a.adminToken
}

func getAdminStatus(t *testing.T, h *AdminHandler, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/status", nil)
	if token != "" {
		req.Header.Set(AdminTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAdminStatus_GrantsExactToken(t *testing.T) {
	auth := &stubAuthorizer{adminToken: "6650827406"}
	h := NewAdminHandler(auth)

	rec := getAdminStatus(t, h, "6650827406")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if len(auth.asked) != 1 || auth.asked[0] != "admin_status" {
		t.Errorf("authorizer consulted with %v", auth.asked)
	}
}

func TestAdminStatus_DeniesOtherTokens(t *testing.T) {
	h := NewAdminHandler(&stubAuthorizer{adminToken: "6650827406"})

	for _, token := range []string{"", "6650827407", "wrong"} {
		rec := getAdminStatus(t, h, token)
		if rec.Code != http.StatusForbidden {
			t.Errorf("token %q: code = %d, want 403", token, rec.Code)
		}
	}
}

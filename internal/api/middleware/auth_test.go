package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/core/token"
)

func testIssuer() *token.Issuer {
	return token.NewIssuer("user-secret", "admin-secret", time.Hour)
}

func runGate(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID string
	handler := mw(func(c echo.Context) error {
		gotID, _ = c.Get(PrincipalIDKey).(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, gotID
}

func TestAuth_ValidBearerToken(t *testing.T) {
	issuer := testIssuer()
	raw, err := issuer.Issue("user-42", token.ScopeUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, gotID := runGate(t, Auth(issuer, token.ScopeUser), "Bearer "+raw)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "user-42" {
		t.Fatalf("principal id not injected: %q", gotID)
	}
}

func TestAuth_RawTokenWithoutPrefix(t *testing.T) {
	issuer := testIssuer()
	raw, err := issuer.Issue("user-42", token.ScopeUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, gotID := runGate(t, Auth(issuer, token.ScopeUser), raw)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for bare token, got %d", rec.Code)
	}
	if gotID != "user-42" {
		t.Fatalf("principal id not injected: %q", gotID)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runGate(t, Auth(testIssuer(), token.ScopeUser), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No token provided") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	rec, _ := runGate(t, Auth(testIssuer(), token.ScopeUser), "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid or expired token") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_ScopeIsolation(t *testing.T) {
	issuer := testIssuer()

	userToken, err := issuer.Issue("user-1", token.ScopeUser)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}
	adminToken, err := issuer.Issue("admin-1", token.ScopeAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	if rec, _ := runGate(t, Auth(issuer, token.ScopeAdmin), "Bearer "+userToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("user token passed admin gate: %d", rec.Code)
	}
	if rec, _ := runGate(t, Auth(issuer, token.ScopeUser), "Bearer "+adminToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin token passed user gate: %d", rec.Code)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (string, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Principal, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, email, password)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func doJSON(e *echo.Echo, method, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, error) {
			if in.Email != "a@x.com" || in.FirstName != "A" || in.LastName != "B" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "id-1", nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/api/v1/user/signup",
		`{"email":"a@x.com","password":"secret1","firstName":"A","lastName":"B"}`, h.Signup)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "id-1" {
		t.Fatalf("expected id in response, got %v", resp)
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/api/v1/user/signup",
		`{"email":"a@x.com","password":"secret1"}`, h.Signup)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/api/v1/user/signup",
		`{"email":"a@x.com","password":"12345","firstName":"A","lastName":"B"}`, h.Signup)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, error) {
			return "", domain.ErrEmailTaken
		},
	}

	// The conflict message names the principal kind the handler serves.
	for _, tc := range []struct{ kind, want string }{
		{"User", "User already exists"},
		{"Admin", "Admin already exists"},
	} {
		h := NewAuthHandler(stub, tc.kind, strings.ToLower(tc.kind))
		rec := doJSON(e, http.MethodPost, "/signup",
			`{"email":"a@x.com","password":"secret1","firstName":"A","lastName":"B"}`, h.Signup)

		if rec.Code != http.StatusConflict {
			t.Fatalf("%s: expected 409, got %d", tc.kind, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("%s: unexpected body: %s", tc.kind, rec.Body.String())
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "token123", &domain.Principal{
				ID:           "id-1",
				Email:        "a@x.com",
				FirstName:    "A",
				LastName:     "B",
				PasswordHash: "$2a$10$secret",
			}, nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/api/v1/user/login",
		`{"email":"a@x.com","password":"secret1"}`, h.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "id-1" || user["email"] != "a@x.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("credential material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_UniformUnauthorizedBody(t *testing.T) {
	e := newEcho()

	wrongPassword := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	unknownEmail := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}

	recA := doJSON(e, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"wrong"}`, NewAuthHandler(wrongPassword, "User", "user").Login)
	recB := doJSON(e, http.MethodPost, "/login",
		`{"email":"ghost@x.com","password":"secret1"}`, NewAuthHandler(unknownEmail, "User", "user").Login)

	if recA.Code != http.StatusUnauthorized || recB.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", recA.Code, recB.Code)
	}
	if recA.Body.String() != recB.Body.String() {
		t.Fatalf("401 bodies differ:\n%s\n%s", recA.Body.String(), recB.Body.String())
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"a@x.com"}`, h.Login)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email and password are required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	rec := doJSON(e, http.MethodPost, "/login", "{", h.Login)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_UnexpectedErrorPropagates(t *testing.T) {
	e := newEcho()
	boom := errors.New("mongo down")
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, error) {
			return "", boom
		},
	}
	h := NewAuthHandler(stub, "User", "user")

	req := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"a@x.com","password":"secret1","firstName":"A","lastName":"B"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Unmapped errors bubble to the central error handler untouched.
	if err := h.Signup(c); !errors.Is(err, boom) {
		t.Fatalf("expected raw error to propagate, got %v", err)
	}
}

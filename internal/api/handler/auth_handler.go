package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/api/metrics"
	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

// AuthHandler serves signup and login for one principal kind. The router
// mounts two instances, one on /user and one on /admin, each wired to the
// matching scoped service.
type AuthHandler struct {
	authService ports.AuthService
	kind        string // "User" or "Admin", used in client-facing messages
	scope       string // metric label
}

func NewAuthHandler(authService ports.AuthService, kind, scope string) *AuthHandler {
	return &AuthHandler{authService: authService, kind: kind, scope: scope}
}

// Signup registers a new principal.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/user/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, h.kind+" already exists")
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues(h.scope).Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		Message: h.kind + " created successfully",
		ID:      id,
	})
}

// Login exchanges credentials for a scoped token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	tkn, principal, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(h.scope, "failure").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues(h.scope, "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   tkn,
		User: principalResponse{
			ID:        principal.ID,
			Email:     principal.Email,
			FirstName: principal.FirstName,
			LastName:  principal.LastName,
		},
	})
}

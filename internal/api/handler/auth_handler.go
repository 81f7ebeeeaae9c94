package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quiz-api/internal/api/metrics"
	"github.com/quizdeck/quiz-api/internal/api/middleware"
	"github.com/quizdeck/quiz-api/internal/core/ports"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// AuthHandler serves registration and login. Both set the session cookie on
// success; the token string itself never appears in a response body.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Register creates a new user account and signs the caller in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Desired username and password"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Router       /user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return problem.Parse().
			WithDetail("There was a problem parsing part of the request.").
			WithCause(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, signed, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	metrics.TokensIssuedTotal.Inc()
	c.SetCookie(middleware.NewAuthCookie(signed, token.TTL))

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and refreshes the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return problem.Parse().
			WithDetail("There was a problem parsing part of the request.").
			WithCause(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, signed, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	c.SetCookie(middleware.NewAuthCookie(signed, token.TTL))

	return c.JSON(http.StatusOK, user)
}

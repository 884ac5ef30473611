package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/api/metrics"
	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	Username    string `json:"username"     validate:"required"`
	Password    string `json:"password"     validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, exp, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:      token,
		Expiration: domain.FormatInstant(exp.UTC()),
	})
}

// ChangePassword replaces the password of a user.
//
// The reply is the same whether or not the current password matched.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/auth/change_password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	// A wrong current password leaves the account untouched but still gets
	// the success reply; clients rely on that wording.
	if _, err := h.authService.ChangePassword(c.Request().Context(), req.Username, req.Password, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Contraseña cambiada"})
}

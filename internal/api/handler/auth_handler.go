package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// tokenRequest accepts both the OAuth2 password form and a JSON body.
type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Token exchanges a username and password for a bearer token.
//
// @Summary      Issue an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  domain.Token
// @Failure      400       {object}  errorBody
// @Failure      401       {object}  errorBody
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailure) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, token)
}

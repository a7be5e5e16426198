package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/api/middleware"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A route
// registered without the middleware yields ErrAuthFailure.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return nil, domain.ErrAuthFailure
	}
	return u, nil
}

func isAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleAdmin
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// bindPage reads offset (or its alias skip) and limit from the query string.
func bindPage(c echo.Context) (domain.Page, error) {
	var p domain.Page
	err := echo.QueryParamsBinder(c).
		Int("skip", &p.Offset).
		Int("offset", &p.Offset).
		Int("limit", &p.Limit).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return p, domain.Invalid(be.Field, "must be an integer")
		}
		return p, domain.Invalid("page", "must be integers")
	}
	return p.Normalize(), nil
}

// bindBody decodes the request into dst and runs the struct validator.
func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.Invalid("body", "malformed request body")
	}
	return c.Validate(dst)
}

// errorBody documents the error envelope written by the central error handler.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// UserHandler serves registration and account management. Accounts may be
// changed or removed by their owner or an Admin; only an Admin may change
// status.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates an account.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      domain.UserCreate  true  "New account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var in domain.UserCreate
	if err := bindBody(c, &in); err != nil {
		return err
	}
	u, err := h.users.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// Me returns the authenticated account.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorBody
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// List pages through accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Rows to skip"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.User
// @Failure      403     {object}  errorBody
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one account.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Update applies a partial change to an account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "User id"
// @Param        body  body      domain.UserPatch  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if actor.ID != id && !isAdmin(actor) {
		return domain.ErrForbidden
	}

	var patch domain.UserPatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	if patch.Status != nil && !isAdmin(actor) {
		return domain.ErrForbidden
	}
	// last_login is maintained by the server.
	patch.LastLogin = nil

	u, err := h.users.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes an account and returns its last state.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if actor.ID != id && !isAdmin(actor) {
		return domain.ErrForbidden
	}
	u, err := h.users.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

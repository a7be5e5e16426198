package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// SessionServer takes over an upgraded connection until it closes.
type SessionServer interface {
	Serve(userID int64, conn *websocket.Conn)
}

type NotificationHandler struct {
	notifications ports.NotificationService
	records       *EntityHandler[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
	sessions      SessionServer
	upgrader      websocket.Upgrader
}

// NewNotificationHandler accepts a nil sessions server when live push is off.
func NewNotificationHandler(notifications ports.NotificationService, sessions SessionServer) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		records:       NewEntityHandler[domain.Notification, domain.NotificationCreate, domain.NotificationPatch](notifications),
		sessions:      sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Register mounts the notification routes. Single notifications are visible
// to their recipient and to admins only; anyone else gets a 404.
func (h *NotificationHandler) Register(g *echo.Group) {
	g.GET("/me", h.Mine)
	g.PATCH("/:id/read", h.MarkRead)
	g.GET("", h.List)
	g.POST("", h.records.Create)
	g.GET("/:id", h.owned(h.records.Get))
	g.PATCH("/:id", h.owned(h.records.Update))
	g.PUT("/:id", h.owned(h.records.Update))
	g.DELETE("/:id", h.owned(h.records.Delete))
}

// owned runs next only when the caller received notification :id or is an admin.
func (h *NotificationHandler) owned(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := currentUser(c)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		n, err := h.notifications.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if n.UserID != actor.ID && !isAdmin(actor) {
			return domain.NotFound("notification", id)
		}
		return next(c)
	}
}

// List pages through every notification for admins. Other callers get their own.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Rows to skip"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if isAdmin(actor) {
		return h.records.List(c)
	}
	return h.Mine(c)
}

// Mine pages through the caller's notifications, oldest first.
//
// @Summary      My notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Rows to skip"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.Notification
// @Router       /notifications/me [get]
func (h *NotificationHandler) Mine(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	ns, err := h.notifications.ListForUser(c.Request().Context(), actor.ID, page)
	if err != nil {
		return err
	}
	if ns == nil {
		ns = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, ns)
}

// MarkRead stamps read_at on one of the caller's notifications.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification id"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  errorBody
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkRead(c.Request().Context(), id, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Stream upgrades to a websocket that receives the caller's new notifications.
// Browsers pass the token as ?access_token=.
//
// @Summary      Live notifications
// @Tags         notifications
// @Security     BearerAuth
// @Param        access_token  query  string  false  "Bearer token for clients that cannot set headers"
// @Success      101
// @Failure      401  {object}  errorBody
// @Router       /ws/notifications [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if h.sessions == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "live notifications are disabled")
	}
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the failure response.
		return nil
	}
	h.sessions.Serve(actor.ID, conn)
	return nil
}

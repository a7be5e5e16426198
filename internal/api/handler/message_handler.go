package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/api/middleware"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

type MessageHandler struct {
	messages ports.MessagingService
	records  *EntityHandler[domain.Message, domain.MessageCreate, struct{}]
}

func NewMessageHandler(messages ports.MessagingService) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		records:  NewRecordHandler[domain.Message, domain.MessageCreate](messages),
	}
}

// Register mounts the send and delivery routes next to the record routes.
// A message is visible to its sender, its receiver and admins; listing every
// message is for admins. The provider callback is public and mounted separately.
func (h *MessageHandler) Register(g *echo.Group) {
	g.POST("/send", h.Send)
	g.GET("/:id/deliveries", h.participant(h.Deliveries))
	g.GET("", h.records.List, middleware.RBAC(domain.RoleAdmin))
	g.POST("", h.Create)
	g.GET("/:id", h.participant(h.records.Get))
	g.DELETE("/:id", h.participant(h.records.Delete))
}

// bindOutgoing decodes a message the caller sends. sender_id defaults to the
// caller and only admins may send on someone else's behalf.
func bindOutgoing(c echo.Context) (domain.MessageCreate, error) {
	var in domain.MessageCreate
	actor, err := currentUser(c)
	if err != nil {
		return in, err
	}
	if err := c.Bind(&in); err != nil {
		return in, domain.Invalid("body", "malformed request body")
	}
	if in.SenderID == 0 {
		in.SenderID = actor.ID
	}
	if in.SenderID != actor.ID && !isAdmin(actor) {
		return in, domain.ErrForbidden
	}
	return in, c.Validate(&in)
}

func isParticipant(m *domain.Message, userID int64) bool {
	return (m.SenderID != nil && *m.SenderID == userID) ||
		(m.ReceiverID != nil && *m.ReceiverID == userID)
}

// participant runs next only when the caller sent or received message :id, or is an admin.
func (h *MessageHandler) participant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := currentUser(c)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		m, err := h.messages.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if !isAdmin(actor) && !isParticipant(m, actor.ID) {
			return domain.NotFound("message", id)
		}
		return next(c)
	}
}

// Create stores a message without forwarding it.
//
// @Summary      Store a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.MessageCreate  true  "Message; sender_id defaults to the caller"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	in, err := bindOutgoing(c)
	if err != nil {
		return err
	}
	msg, err := h.messages.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Send stores a message and forwards it to the receiver over WhatsApp.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.MessageCreate  true  "Message; sender_id defaults to the caller"
// @Success      201   {object}  domain.MessageReceipt
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      502   {object}  errorBody
// @Router       /messages/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	in, err := bindOutgoing(c)
	if err != nil {
		return err
	}

	receipt, err := h.messages.Send(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, receipt)
}

// Deliveries lists the forward attempts of a message.
//
// @Summary      Delivery attempts of a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message id"
// @Success      200  {array}   domain.Delivery
// @Failure      404  {object}  errorBody
// @Router       /messages/{id}/deliveries [get]
func (h *MessageHandler) Deliveries(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ds, err := h.messages.Deliveries(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if ds == nil {
		ds = []domain.Delivery{}
	}
	return c.JSON(http.StatusOK, ds)
}

// Webhook accepts inbound messages from the provider. Repeated deliveries of
// the same provider id are acknowledged without being stored again.
//
// @Summary      Inbound message callback
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      domain.InboundMessage  true  "Inbound message"
// @Success      200   {object}  map[string]string
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorBody
// @Router       /webhook [post]
func (h *MessageHandler) Webhook(c echo.Context) error {
	var in domain.InboundMessage
	if err := bindBody(c, &in); err != nil {
		return err
	}
	msg, stored, err := h.messages.Receive(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if !stored {
		return c.JSON(http.StatusOK, map[string]string{"status": "duplicate"})
	}
	return c.JSON(http.StatusCreated, msg)
}

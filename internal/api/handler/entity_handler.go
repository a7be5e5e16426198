package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// EntityHandler exposes the repository operations of one entity over HTTP.
// Operations the entity does not support are left nil and never routed.
type EntityHandler[E, C, P any] struct {
	reader  ports.Reader[E]
	creator ports.Creator[E, C]
	updater ports.Updater[E, P]
	deleter ports.Deleter[E]
}

// NewEntityHandler serves create, get, list, update and delete.
func NewEntityHandler[E, C, P any](svc ports.Repository[E, C, P]) *EntityHandler[E, C, P] {
	return &EntityHandler[E, C, P]{reader: svc, creator: svc, updater: svc, deleter: svc}
}

// NewRecordHandler serves entities that are never edited.
func NewRecordHandler[E, C any](svc ports.RecordRepository[E, C]) *EntityHandler[E, C, struct{}] {
	return &EntityHandler[E, C, struct{}]{reader: svc, creator: svc, deleter: svc}
}

// NewAppendOnlyHandler serves history that is never edited or removed.
func NewAppendOnlyHandler[E, C any](svc ports.AppendOnlyRepository[E, C]) *EntityHandler[E, C, struct{}] {
	return &EntityHandler[E, C, struct{}]{reader: svc, creator: svc}
}

// Register mounts the supported routes on g. writeMW guards the mutating
// routes only. PUT is accepted as an alias of PATCH and is equally partial.
func (h *EntityHandler[E, C, P]) Register(g *echo.Group, writeMW ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, writeMW...)
	if h.updater != nil {
		g.PATCH("/:id", h.Update, writeMW...)
		g.PUT("/:id", h.Update, writeMW...)
	}
	if h.deleter != nil {
		g.DELETE("/:id", h.Delete, writeMW...)
	}
}

func (h *EntityHandler[E, C, P]) Create(c echo.Context) error {
	var in C
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.creator.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *EntityHandler[E, C, P]) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.reader.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler[E, C, P]) List(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	out, err := h.reader.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	if out == nil {
		out = []*E{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EntityHandler[E, C, P]) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var patch P
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	out, err := h.updater.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete responds with the entity as it was before removal.
func (h *EntityHandler[E, C, P]) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.deleter.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

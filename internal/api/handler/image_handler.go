package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// MaxImageSize bounds a single upload.
const MaxImageSize = 10 << 20

// ImageHandler serves cattle photos. Images are only created by upload.
type ImageHandler struct {
	images  ports.CattleImageService
	records *EntityHandler[domain.CattleImage, domain.CattleImageCreate, struct{}]
}

func NewImageHandler(images ports.CattleImageService) *ImageHandler {
	return &ImageHandler{
		images:  images,
		records: NewRecordHandler[domain.CattleImage, domain.CattleImageCreate](images),
	}
}

// Register mounts the upload routes under cattle and the record routes under images.
func (h *ImageHandler) Register(cattle, images *echo.Group, writeMW ...echo.MiddlewareFunc) {
	cattle.POST("/:id/images", h.Upload, writeMW...)
	cattle.GET("/:id/images", h.ListByCattle)

	images.GET("", h.records.List)
	images.GET("/:id", h.records.Get)
	images.DELETE("/:id", h.records.Delete, writeMW...)
}

// Upload stores a photo for an animal.
//
// @Summary      Upload a cattle image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Cattle id"
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  domain.CattleImage
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /cattle/{id}/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	cattleID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.Invalid("file", "is required")
	}
	if fh.Size > MaxImageSize {
		return domain.Invalid("file", "must be at most %d bytes", MaxImageSize)
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return domain.Invalid("file", "must be an image, got %q", contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := h.images.Upload(c.Request().Context(), cattleID, fh.Filename, contentType, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, img)
}

// ListByCattle returns every photo of an animal.
//
// @Summary      List images of an animal
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Cattle id"
// @Success      200  {array}   domain.CattleImage
// @Failure      404  {object}  errorBody
// @Router       /cattle/{id}/images [get]
func (h *ImageHandler) ListByCattle(c echo.Context) error {
	cattleID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	imgs, err := h.images.ListByCattle(c.Request().Context(), cattleID)
	if err != nil {
		return err
	}
	if imgs == nil {
		imgs = []*domain.CattleImage{}
	}
	return c.JSON(http.StatusOK, imgs)
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Mirieri/nikonangombeghani-api/docs"
	"github.com/Mirieri/nikonangombeghani-api/internal/api/handler"
	"github.com/Mirieri/nikonangombeghani-api/internal/api/middleware"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// Resource is a generic entity handler mountable under a path prefix.
type Resource interface {
	Register(g *echo.Group, writeMW ...echo.MiddlewareFunc)
}

// Handlers groups everything the router mounts. Entity handlers are keyed by
// their path prefix.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Images        *handler.ImageHandler
	Messages      *handler.MessageHandler
	Notifications *handler.NotificationHandler
	Health        *handler.HealthHandler

	// Herd resources are written by farmers and admins only.
	Herd map[string]Resource
	// Open resources are writable by any active user.
	Open map[string]Resource
}

type Options struct {
	Authenticator middleware.TokenAuthenticator
	Logger        zerolog.Logger
	// ImageDir, when set, is served statically under ImageURLPrefix.
	ImageDir       string
	ImageURLPrefix string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("livestock"))

	// --- Public routes ---
	e.GET("/health", h.Health.Liveness)
	e.GET("/health/ready", h.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/token", h.Auth.Token)
	e.POST("/users", h.Users.Register)
	e.POST("/webhook", h.Messages.Webhook)

	if opts.ImageDir != "" {
		e.Static(opts.ImageURLPrefix, opts.ImageDir)
	}

	// --- Authenticated routes ---
	auth := middleware.Auth(opts.Authenticator)
	herdWriters := middleware.RBAC(domain.RoleFarmer, domain.RoleAdmin)

	users := e.Group("/users", auth)
	users.GET("/me", h.Users.Me)
	users.GET("", h.Users.List, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", h.Users.Get)
	users.PATCH("/:id", h.Users.Update)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)

	for prefix, r := range h.Herd {
		r.Register(e.Group(prefix, auth), herdWriters)
	}
	for prefix, r := range h.Open {
		r.Register(e.Group(prefix, auth))
	}

	h.Images.Register(e.Group("/cattle", auth), e.Group("/images", auth), herdWriters)
	h.Messages.Register(e.Group("/messages", auth))
	h.Notifications.Register(e.Group("/notifications", auth))
	e.GET("/ws/notifications", h.Notifications.Stream, auth)

	return e
}

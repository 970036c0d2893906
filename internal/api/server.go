// Package api exposes the notification center over a small REST surface for
// the suite's presentation panel and sibling services.
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrsuite/hrhub/internal/conf"
	"github.com/hrsuite/hrhub/internal/notification"
	"github.com/hrsuite/hrhub/internal/observability"
)

// Controller handles the notification REST endpoints.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	Settings *conf.Settings

	svc       *notification.Service
	apiLogger *slog.Logger
}

// New creates the API controller, registering all routes on a fresh echo
// instance.
func New(settings *conf.Settings, svc *notification.Service, metrics *observability.Metrics, logger *slog.Logger) *Controller {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	c := &Controller{
		Echo:      e,
		Settings:  settings,
		svc:       svc,
		apiLogger: logger,
	}

	c.Group = e.Group("/api/v1")
	c.setupNotificationRoutes()

	if registry := metrics.Registry(); registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	return c
}

// setupNotificationRoutes configures the notification-related routes.
func (c *Controller) setupNotificationRoutes() {
	c.Group.POST("/notifications", c.CreateNotification)
	c.Group.GET("/notifications", c.GetNotifications)
	c.Group.GET("/notifications/unread", c.GetUnreadNotifications)
	c.Group.GET("/notifications/unread/count", c.GetUnreadCount)
	c.Group.GET("/notifications/stats", c.GetStats)
	c.Group.PUT("/notifications/read-all", c.MarkAllRead)
	c.Group.PUT("/notifications/:id/read", c.MarkNotificationRead)
	c.Group.DELETE("/notifications/read", c.DeleteAllRead)
	c.Group.DELETE("/notifications/:id", c.DeleteNotification)
	c.Group.POST("/notifications/clean", c.CleanOldNotifications)
	c.Group.GET("/notifications/config/:user", c.GetUserConfig)
	c.Group.PUT("/notifications/config/:user", c.UpdateUserConfig)
}

// Start begins serving on the configured host and port. Blocks until the
// server stops.
func (c *Controller) Start() error {
	return c.Echo.Start(c.Settings.Host + ":" + c.Settings.Port)
}

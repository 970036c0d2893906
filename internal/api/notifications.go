package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrsuite/hrhub/internal/notification"
)

// requireUser extracts the mandatory user query parameter. The returned
// error is an *echo.HTTPError so callers can return it directly and echo's
// error handler writes the 400 response exactly once.
func requireUser(ctx echo.Context) (string, error) {
	user := ctx.QueryParam("user")
	if user == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "user query parameter is required")
	}
	return user, nil
}

// CreateNotification is the inbound integration point: domain components
// post a creation request here as a side effect of a business action.
// Recipients filtered out by their configuration are suppressed silently,
// so a valid request with zero created records is still a 200.
func (c *Controller) CreateNotification(ctx echo.Context) error {
	var params notification.CreateParams
	if err := ctx.Bind(&params); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid creation request body",
		})
	}
	if !params.Type.Valid() {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "unknown notification type",
		})
	}
	if params.Module != "" && !params.Module.Valid() {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "unknown module",
		})
	}

	created := c.svc.Create(params)

	if c.apiLogger != nil && c.Settings.Debug {
		c.apiLogger.Debug("notification creation request handled",
			"recipients", len(params.UserIDs),
			"created", len(created),
			"type", params.Type)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"created":      created,
		"createdCount": len(created),
		"requestedFor": len(params.UserIDs),
	})
}

// GetNotifications returns all of a user's notifications, newest first.
func (c *Controller) GetNotifications(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	notifications := c.svc.UserNotifications(user)
	return ctx.JSON(http.StatusOK, map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetUnreadNotifications returns a user's unread notifications, newest first.
func (c *Controller) GetUnreadNotifications(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	notifications := c.svc.UserUnread(user)
	return ctx.JSON(http.StatusOK, map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetUnreadCount returns the number of unread notifications for a user.
func (c *Controller) GetUnreadCount(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"unreadCount": c.svc.UserUnreadCount(user),
	})
}

// GetStats returns per-type notification statistics for a user.
func (c *Controller) GetStats(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.svc.UserStats(user))
}

// MarkNotificationRead marks one notification as read. Unknown ids are a
// no-op by contract, reported in the response rather than as an error.
func (c *Controller) MarkNotificationRead(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "notification id is required",
		})
	}

	changed := c.svc.MarkAsRead(id)
	return ctx.JSON(http.StatusOK, map[string]any{
		"changed": changed,
	})
}

// MarkAllRead marks every unread notification of a user as read.
func (c *Controller) MarkAllRead(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	changed := c.svc.MarkAllAsRead(user)
	return ctx.JSON(http.StatusOK, map[string]any{
		"changed": changed,
	})
}

// DeleteNotification removes one notification unconditionally.
func (c *Controller) DeleteNotification(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "notification id is required",
		})
	}

	removed := c.svc.Delete(id)
	return ctx.JSON(http.StatusOK, map[string]any{
		"removed": removed,
	})
}

// DeleteAllRead removes every read notification of a user.
func (c *Controller) DeleteAllRead(ctx echo.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	removed := c.svc.DeleteAllRead(user)
	return ctx.JSON(http.StatusOK, map[string]any{
		"removed": removed,
	})
}

// CleanOldNotifications sweeps read notifications older than the retention
// window, for one user or globally when no user is given.
func (c *Controller) CleanOldNotifications(ctx echo.Context) error {
	user := ctx.QueryParam("user")

	removed := c.svc.CleanOld(user)
	return ctx.JSON(http.StatusOK, map[string]any{
		"removed": removed,
	})
}

// GetUserConfig returns a user's delivery configuration. A user with no
// stored configuration is fail-open; the response says so explicitly.
func (c *Controller) GetUserConfig(ctx echo.Context) error {
	user := ctx.Param("user")
	if user == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "user is required",
		})
	}

	cfg, ok := c.svc.UserConfig(user)
	if !ok {
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"error": "no configuration for user; all notifications are delivered",
		})
	}
	return ctx.JSON(http.StatusOK, cfg)
}

// UpdateUserConfig applies a partial configuration update and returns the
// resulting configuration.
func (c *Controller) UpdateUserConfig(ctx echo.Context) error {
	user := ctx.Param("user")
	if user == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "user is required",
		})
	}

	var patch notification.ConfigPatch
	if err := ctx.Bind(&patch); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid configuration body",
		})
	}

	cfg := c.svc.UpdateUserConfig(user, patch)
	return ctx.JSON(http.StatusOK, cfg)
}

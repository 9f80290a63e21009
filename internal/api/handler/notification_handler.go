package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/infrastructure/notify"
)

const keepAliveInterval = 20 * time.Second

// NotificationSource hands out bus subscriptions.
type NotificationSource interface {
	Subscribe() *notify.Subscription
}

// NotificationHandler streams notifications to a connected renderer.
type NotificationHandler struct {
	source NotificationSource
}

func NewNotificationHandler(source NotificationSource) *NotificationHandler {
	return &NotificationHandler{source: source}
}

// Stream handles GET /v1/notifications/stream as server-sent events. The
// subscription lives exactly as long as the connection.
//
// @Summary      Notification stream
// @Tags         notifications
// @Produce      text/event-stream
// @Success      200
// @Router       /v1/notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	sub := h.source.Subscribe()
	defer sub.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case n, ok := <-sub.C():
			if !ok {
				return nil
			}
			data, err := json.Marshal(n)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: notification\ndata: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

package http

import (
	"context"
	"net/http"
	"time"

	"culinary-hub/internal/notify"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const notificationWriteTimeout = 10 * time.Second

// Tokens travel in the query string for browser clients, so any origin may
// connect.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	feed   notify.Subscriber
	logger *logger.Logger
}

// NewNotificationHandler takes the live feed; nil means live notifications
// are switched off.
func NewNotificationHandler(feed notify.Subscriber, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		feed:   feed,
		logger: logger,
	}
}

// Stream godoc
// @Summary      Live notifications
// @Description  Upgrades to a websocket and pushes the caller's chef application decisions and course completions as JSON text frames. Browsers may pass the bearer token as the token query parameter.
// @Tags         notifications
// @Security     BearerAuth
// @Param        token query string false "Bearer token for clients that cannot set headers"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  dto.MessageResponse
// @Failure      503  {object}  dto.MessageResponse
// @Router       /notifications/ws [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Live notifications are unavailable"})
		return
	}
	actor := actorFrom(c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := h.feed.Subscribe(ctx, actor.UserID)
	if err != nil {
		h.logger.Error("Failed to subscribe user %d to notifications: %v", actor.UserID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Live notifications are unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %d", actor.UserID)

	// the read loop only notices the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket disconnected for user %d", actor.UserID)
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(notificationWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warn("Failed to write WebSocket message for user %d: %v", actor.UserID, err)
				return
			}
		}
	}
}

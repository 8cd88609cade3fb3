package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davelara/shopper-cart/internal/auth"
	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/platform/stream"
)

// WatchHandler exposes the change streams as server-sent events. Each
// request holds one subscription; disconnecting releases it.
type WatchHandler struct {
	events stream.Publisher
}

func NewWatchHandler(events stream.Publisher) *WatchHandler {
	return &WatchHandler{events: events}
}

func (h *WatchHandler) RegisterRoutes(router *gin.RouterGroup) {
	watch := router.Group("/watch")
	{
		watch.GET("/catalog", h.WatchCatalog)
		watch.GET("/cart", h.WatchCart)
	}
}

func (h *WatchHandler) WatchCatalog(c *gin.Context) {
	h.streamTopic(c, stream.TopicCatalog)
}

// WatchCart streams only the caller's own cart changes.
func (h *WatchHandler) WatchCart(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}
	h.streamTopic(c, stream.CartTopic(identity.UserID))
}

func (h *WatchHandler) streamTopic(c *gin.Context, topic string) {
	ctx := c.Request.Context()

	sub, err := h.events.Subscribe(ctx, topic)
	if err != nil {
		logger.Error("streamTopic: subscribe failed for "+topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to open change stream"})
		return
	}
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

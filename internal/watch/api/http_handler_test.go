package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/davelara/shopper-cart/internal/platform/stream"
)

// closeNotifyRecorder adds the http.CloseNotifier implementation that
// gin's Context.Stream requires and httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestWatchHandler_WatchCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Streams catalog changes until the client disconnects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		events := stream.NewRedisStreams(mr.Addr(), "test")
		defer events.Close()

		router := gin.New()
		NewWatchHandler(events).RegisterRoutes(router.Group("/api"))

		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/api/watch/catalog", nil).WithContext(ctx)
		w := newCloseNotifyRecorder()

		done := make(chan struct{})
		go func() {
			router.ServeHTTP(w, req)
			close(done)
		}()

		// Publish once the handler's subscription is on the wire; Publish
		// reports how many subscribers received the message.
		payload, err := json.Marshal(stream.Event{Entity: "product", ID: "p1", Action: stream.ActionUpdated, At: time.Now().UTC()})
		assert.NoError(t, err)
		published := false
		for i := 0; i < 100; i++ {
			if mr.Publish("test:catalog", string(payload)) > 0 {
				published = true
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		assert.True(t, published, "handler never subscribed")

		// Let the event flush, then hang up.
		time.Sleep(100 * time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not stop after disconnect")
		}

		body := w.Body.String()
		assert.Contains(t, body, "event:change")
		assert.Contains(t, body, `"id":"p1"`)
	})

	t.Run("Cart watch rejects unauthenticated callers", func(t *testing.T) {
		mr := miniredis.RunT(t)
		events := stream.NewRedisStreams(mr.Addr(), "test")
		defer events.Close()

		router := gin.New()
		NewWatchHandler(events).RegisterRoutes(router.Group("/api"))

		req := httptest.NewRequest(http.MethodGet, "/api/watch/cart", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

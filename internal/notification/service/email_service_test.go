package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	orderDomain "github.com/davelara/shopper-cart/internal/order/domain"
	"github.com/davelara/shopper-cart/internal/platform/config"
)

func sampleOrder() *orderDomain.Order {
	return &orderDomain.Order{
		ID:        "order-1",
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Items: []orderDomain.OrderItem{
			{ProductID: "p1", Name: "Smartphone X", Price: 699.99, Quantity: 2, Subtotal: 1399.98},
		},
		Total:     1399.98,
		Status:    orderDomain.StatusCompleted,
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestEmailJSService_SendOrderConfirmation(t *testing.T) {
	t.Run("Posts the order as template params", func(t *testing.T) {
		var gotPath string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := NewEmailJSService(config.EmailConfig{
			BaseURL:    server.URL,
			ServiceID:  "svc-1",
			TemplateID: "tpl-1",
			PublicKey:  "pub-1",
		})

		err := svc.SendOrderConfirmation(context.Background(), sampleOrder())

		assert.NoError(t, err)
		assert.Equal(t, "/api/v1.0/email/send", gotPath)

		var payload sendRequest
		assert.NoError(t, json.Unmarshal(gotBody, &payload))
		assert.Equal(t, "svc-1", payload.ServiceID)
		assert.Equal(t, "tpl-1", payload.TemplateID)
		assert.Equal(t, "pub-1", payload.UserID)
		assert.Equal(t, "user@example.com", payload.TemplateParams.Email)
		assert.Equal(t, "order-1", payload.TemplateParams.OrderID)
		assert.Equal(t, "2025-03-14 09:30:00", payload.TemplateParams.OrderDate)
	})

	t.Run("Non-200 response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		svc := NewEmailJSService(config.EmailConfig{BaseURL: server.URL})

		err := svc.SendOrderConfirmation(context.Background(), sampleOrder())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("Unreachable endpoint is an error", func(t *testing.T) {
		svc := NewEmailJSService(config.EmailConfig{BaseURL: "http://127.0.0.1:1"})

		err := svc.SendOrderConfirmation(context.Background(), sampleOrder())

		assert.Error(t, err)
	})
}

func TestBuildTemplateParams(t *testing.T) {
	t.Run("Maps line items and totals", func(t *testing.T) {
		params := buildTemplateParams(sampleOrder())

		assert.Len(t, params.Orders, 1)
		assert.Equal(t, "Smartphone X", params.Orders[0].Name)
		assert.Equal(t, 2, params.Orders[0].Units)
		assert.Equal(t, 1399.98, params.Orders[0].Subtotal)
		assert.Equal(t, 1399.98, params.Cost.Subtotal)
		assert.Equal(t, 0.0, params.Cost.Shipping)
		assert.Equal(t, 0.0, params.Cost.Tax)
		assert.Equal(t, 1399.98, params.Cost.Total)
	})
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	orderDomain "github.com/davelara/shopper-cart/internal/order/domain"
	"github.com/davelara/shopper-cart/internal/platform/config"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

// EmailService sends the order confirmation through the EmailJS REST API.
// One attempt per order, no retry; callers treat failures as non-fatal.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order *orderDomain.Order) error
}

type emailJSService struct {
	cfg        config.EmailConfig
	httpClient *http.Client
}

func NewEmailJSService(cfg config.EmailConfig) EmailService {
	return &emailJSService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type emailLineItem struct {
	Name     string  `json:"name"`
	Units    int     `json:"units"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type emailCost struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// templateParams matches the placeholders of the EmailJS order template.
type templateParams struct {
	Email     string          `json:"email"`
	OrderID   string          `json:"order_id"`
	Cost      emailCost       `json:"cost"`
	Orders    []emailLineItem `json:"orders"`
	OrderDate string          `json:"order_date"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

func buildTemplateParams(order *orderDomain.Order) templateParams {
	items := make([]emailLineItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = emailLineItem{
			Name:     item.Name,
			Units:    item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		}
	}
	return templateParams{
		Email:   order.UserEmail,
		OrderID: order.ID,
		Cost: emailCost{
			Subtotal: order.Total,
			Shipping: 0,
			Tax:      0,
			Total:    order.Total,
		},
		Orders:    items,
		OrderDate: order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *emailJSService) SendOrderConfirmation(ctx context.Context, order *orderDomain.Order) error {
	payload := sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.PublicKey,
		TemplateParams: buildTemplateParams(order),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	reqURL := s.cfg.BaseURL + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	logger.Info("Order confirmation email sent for order %s to %s", order.ID, order.UserEmail)
	return nil
}

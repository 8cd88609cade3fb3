package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davelara/shopper-cart/internal/auth"
	"github.com/davelara/shopper-cart/internal/checkout/domain"
	"github.com/davelara/shopper-cart/internal/checkout/service"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
}

func NewCheckoutHandler(cs service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: cs}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", h.Checkout)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}
	// Static API tokens carry no email; only user accounts can check out.
	if identity.Email == "" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "checkout requires a user account"})
		return
	}

	order, err := h.checkout.Checkout(c.Request.Context(), identity.UserID, identity.Email)
	if err != nil {
		var oosErr *domain.OutOfStockError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.As(err, &oosErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success":         false,
				"error":           oosErr.Error(),
				"outOfStockItems": oosErr.Items,
				"remainingItems":  oosErr.RemainingItems,
			})
		default:
			logger.Error("Checkout: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": order.ID, "order": order})
}

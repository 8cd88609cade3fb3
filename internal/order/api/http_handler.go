package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davelara/shopper-cart/internal/auth"
	"github.com/davelara/shopper-cart/internal/order/repository"
	"github.com/davelara/shopper-cart/internal/order/service"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orders: os}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	orders, err := h.orders.ListOrdersByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		logger.Error("ListOrders: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GetOrder returns an order to its owner or to an admin; other callers get
// a not-found rather than a hint that the order exists.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		logger.Error("GetOrder: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve order"})
		return
	}

	if order.UserID != identity.UserID && !identity.IsAdmin {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": repository.ErrOrderNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

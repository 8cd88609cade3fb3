package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davelara/shopper-cart/internal/auth"
	"github.com/davelara/shopper-cart/internal/cart/domain"
	cartRepo "github.com/davelara/shopper-cart/internal/cart/repository"
	"github.com/davelara/shopper-cart/internal/cart/service"
	catalogRepo "github.com/davelara/shopper-cart/internal/catalog/repository"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(cs service.CartService) *CartHandler {
	return &CartHandler{carts: cs}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddItem)
		cart.PUT("/:entryId", h.UpdateQuantity)
		cart.DELETE("/:entryId", h.RemoveItem)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	items, err := h.carts.GetCart(c.Request.Context(), identity.UserID)
	if err != nil {
		logger.Error("GetCart: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cartItems": items})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	var req domain.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), identity.UserID, req); err != nil {
		h.writeCartError(c, "AddItem", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	var req domain.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	err := h.carts.UpdateQuantity(c.Request.Context(), identity.UserID, c.Param("entryId"), req.Quantity)
	if err != nil {
		h.writeCartError(c, "UpdateQuantity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), identity.UserID, c.Param("entryId")); err != nil {
		h.writeCartError(c, "RemoveItem", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) writeCartError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, cartRepo.ErrCartEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, catalogRepo.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrQuantityExceedsStock):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Cart operation failed"})
	}
}

package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/cart"
	"github.com/worksteamwear/storefront/internal/catalog"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func addToCartHandler(svc *cart.Service, products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customer_id")
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		if req.Size != "" && !catalog.ValidSize(req.Size) {
			badRequest(c, "size must be one of XS, S, M, L, XL")
			return
		}
		p, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			fail(c, err)
			return
		}
		size := req.Size
		if size == "" {
			size = p.Size
		}
		if err := svc.Store().Add(c.Request.Context(), customerID, p.ID, size, req.Quantity); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"added": true})
	}
}

func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Totals(c.Request.Context(), c.Param("customer_id"), c.Query("region"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func updateCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid item id")
			return
		}
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if err := svc.Store().UpdateQuantity(c.Request.Context(), c.Param("customer_id"), itemID, req.Quantity); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func removeCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid item id")
			return
		}
		ok, err := svc.Store().Remove(c.Request.Context(), c.Param("customer_id"), itemID)
		if err != nil {
			fail(c, err)
			return
		}
		if !ok {
			fail(c, cart.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Store().Clear(c.Request.Context(), c.Param("customer_id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}

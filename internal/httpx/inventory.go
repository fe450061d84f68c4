package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/inventory"
)

type createInventoryItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func listInventoryHandler(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createInventoryItemHandler(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createInventoryItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.Quantity < 0 {
			badRequest(c, "quantity must be non-negative")
			return
		}
		it := &inventory.Item{Name: req.Name, Quantity: req.Quantity, Description: req.Description}
		if err := store.Create(c.Request.Context(), it); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func setInventoryQuantityHandler(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid id")
			return
		}
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			badRequest(c, "quantity is required")
			return
		}
		if *req.Quantity < 0 {
			badRequest(c, "quantity must be non-negative")
			return
		}
		if err := store.SetQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func deleteInventoryItemHandler(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid id")
			return
		}
		ok, err := store.Delete(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if !ok {
			fail(c, inventory.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

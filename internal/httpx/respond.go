package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/cart"
	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/chatbot"
	"github.com/worksteamwear/storefront/internal/customer"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/order"
)

// fail maps domain errors to HTTP status codes and writes the standard
// error body.
func fail(c *gin.Context, err error) {
	var stock *order.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stock.Error(),
			"shortages": stock.Shortages,
		})
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, inventory.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, chatbot.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrNoBulkCancel),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, order.ErrNoItems):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, customer.ErrAlreadyExist):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, customer.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

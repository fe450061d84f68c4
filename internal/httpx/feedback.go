package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/feedback"
)

type feedbackRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Message    string `json:"message" binding:"required"`
	Rating     int    `json:"rating"`
}

func createFeedbackHandler(store feedback.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req feedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "name, email and message are required")
			return
		}
		if req.Rating < 0 || req.Rating > 5 {
			badRequest(c, "rating must be between 0 and 5")
			return
		}
		f := &feedback.Feedback{
			CustomerID: req.CustomerID,
			Name:       req.Name,
			Email:      req.Email,
			Message:    req.Message,
			Rating:     req.Rating,
		}
		if err := store.Create(c.Request.Context(), f); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, f)
	}
}

func listFeedbackHandler(store feedback.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		items, err := store.List(c.Request.Context(), limit)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"feedback": items})
	}
}

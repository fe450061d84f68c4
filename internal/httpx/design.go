package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/design"
)

type designRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// generateDesignHandler godoc
// @Summary      Generate a jersey design from a text prompt
// @Tags         design
// @Accept       json
// @Produce      json
// @Param        body body designRequest true "Prompt"
// @Success      200 {object} design.Design
// @Router       /design/generate [post]
func generateDesignHandler(gen *design.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req designRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "prompt is required")
			return
		}
		c.JSON(http.StatusOK, gen.Generate(req.Prompt))
	}
}

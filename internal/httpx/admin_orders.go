package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/order"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bulkUpdateStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required"`
	Status string  `json:"status" binding:"required"`
}

func adminListOrdersHandler(repo order.Store, settings config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := order.Status(c.Query("status"))
		if st == "" {
			badRequest(c, "status query parameter is required")
			return
		}
		if !st.Valid() {
			fail(c, order.ErrUnknownStatus)
			return
		}
		orders, err := repo.ListByStatus(c.Request.Context(), st)
		if err != nil {
			fail(c, err)
			return
		}
		out := make([]orderResponse, 0, len(orders))
		for i := range orders {
			items, err := repo.Items(c.Request.Context(), orders[i].ID)
			if err != nil {
				fail(c, err)
				return
			}
			out = append(out, orderResponse{
				Order:  &orders[i],
				Items:  items,
				Totals: order.Breakdown(order.TotalAmount(items), orders[i].DeliveryFee, settings.VATRatePercent),
			})
		}
		c.JSON(http.StatusOK, gin.H{"status": st, "orders": out})
	}
}

func adminOrderCountsHandler(repo order.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := repo.CountByStatus(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"counts": counts})
	}
}

// adminUpdateStatusHandler godoc
// @Summary      Update an order's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id   path int                 true "Order ID"
// @Param        body body updateStatusRequest true "Target status"
// @Success      200 {object} order.Order
// @Failure      409 {object} catalog.HTTPError "insufficient stock"
// @Failure      422 {object} catalog.HTTPError "invalid transition"
// @Router       /admin/orders/{id}/status [put]
func adminUpdateStatusHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid id")
			return
		}
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		o, err := engine.UpdateStatus(c.Request.Context(), id, order.Status(req.Status))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func adminBulkUpdateStatusHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkUpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if len(req.IDs) == 0 {
			badRequest(c, "ids must not be empty")
			return
		}
		orders, err := engine.BulkUpdateStatus(c.Request.Context(), req.IDs, order.Status(req.Status))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": len(orders), "orders": orders})
	}
}

func adminDeleteOrderHandler(repo order.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid id")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if !ok {
			fail(c, order.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func adminSweepHandler(engine *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := engine.Sweep(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

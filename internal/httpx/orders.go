package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/cart"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/order"
)

type checkoutRequest struct {
	CustomerID    string       `json:"customer_id" binding:"required"`
	Email         string       `json:"email"`
	Mobile        string       `json:"mobile"`
	Address       string       `json:"address"`
	Region        string       `json:"region"`
	PaymentMethod string       `json:"payment_method" binding:"required"`
	Items         []order.Line `json:"items"`
	// FromCart checks out the saved cart instead of an explicit item list.
	FromCart bool `json:"from_cart"`
}

type orderResponse struct {
	Order  *order.Order       `json:"order"`
	Items  []order.Item       `json:"items"`
	Totals order.VATBreakdown `json:"totals"`
}

// checkoutHandler godoc
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order body checkoutRequest true "Checkout"
// @Success      201 {object} orderResponse
// @Failure      400 {object} catalog.HTTPError
// @Router       /checkout [post]
func checkoutHandler(engine *order.Engine, carts *cart.Service, settings config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}

		lines := req.Items
		if req.FromCart {
			saved, err := carts.Store().List(c.Request.Context(), req.CustomerID)
			if err != nil {
				fail(c, err)
				return
			}
			lines = lines[:0]
			for _, ln := range saved {
				lines = append(lines, order.Line{
					ProductID: ln.ProductID, Quantity: ln.Quantity, Size: ln.Size,
				})
			}
		}

		o, items, err := engine.PlaceOrder(c.Request.Context(), order.PlaceOrderInput{
			CustomerID:    req.CustomerID,
			Email:         req.Email,
			Mobile:        req.Mobile,
			Address:       req.Address,
			Region:        req.Region,
			PaymentMethod: order.PaymentMethod(req.PaymentMethod),
			Lines:         lines,
		})
		if err != nil {
			fail(c, err)
			return
		}
		if req.FromCart {
			if err := carts.Store().Clear(c.Request.Context(), req.CustomerID); err != nil {
				fail(c, err)
				return
			}
		}

		c.JSON(http.StatusCreated, orderResponse{
			Order:  o,
			Items:  items,
			Totals: order.Breakdown(order.TotalAmount(items), o.DeliveryFee, settings.VATRatePercent),
		})
	}
}

func getOrderByRefHandler(repo order.Store, settings config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByRef(c.Request.Context(), c.Param("ref"))
		if err != nil {
			fail(c, err)
			return
		}
		items, err := repo.Items(c.Request.Context(), o.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, orderResponse{
			Order:  o,
			Items:  items,
			Totals: order.Breakdown(order.TotalAmount(items), o.DeliveryFee, settings.VATRatePercent),
		})
	}
}

func listMyOrdersHandler(repo order.Store, settings config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListByCustomer(c.Request.Context(), c.Param("customer_id"))
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
		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

func cancelOrderHandler(engine *order.Engine, repo order.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByRef(c.Request.Context(), c.Param("ref"))
		if err != nil {
			fail(c, err)
			return
		}
		cancelled, err := engine.Cancel(c.Request.Context(), o.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cancelled)
	}
}

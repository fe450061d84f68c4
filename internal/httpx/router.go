// Package httpx wires the storefront's HTTP surface: the public shop API,
// the customer account routes and the staff admin routes.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/address"
	"github.com/worksteamwear/storefront/internal/cart"
	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/chatbot"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/customer"
	"github.com/worksteamwear/storefront/internal/design"
	"github.com/worksteamwear/storefront/internal/feedback"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/order"
	"github.com/worksteamwear/storefront/internal/shipping"

	_ "github.com/worksteamwear/storefront/internal/docs"
)

// Deps carries everything the router needs; nil optional fields disable
// their routes.
type Deps struct {
	Products  catalog.Repository
	Inventory inventory.Store
	Orders    order.Store
	Engine    *order.Engine
	Shipping  *shipping.Service
	Rates     shipping.Store
	Carts     *cart.Service
	Customers *customer.Service
	Chat      *chatbot.Service
	Designs   *design.Generator
	Addresses *address.Resolver
	Feedback  feedback.Store
	Settings  config.Settings
	Log       *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(d.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public catalog.
	r.GET("/products", listProductsHandler(d.Products))
	r.GET("/products/:id", getProductHandler(d.Products))
	r.GET("/products/:id/sizes", productSizesHandler(d.Products, d.Inventory))

	// Shipping quotes.
	r.GET("/shipping/quote", quoteFeeHandler(d.Shipping))

	// Customer accounts.
	r.POST("/customers/signup", signupHandler(d.Customers))
	r.POST("/customers/login", loginHandler(d.Customers))
	r.GET("/customers/:id", getProfileHandler(d.Customers))
	r.PUT("/customers/:id", updateProfileHandler(d.Customers))

	// Cart.
	crt := r.Group("/customers/:id/cart")
	{
		// gin reuses :id for the customer across the group
		crt.GET("", withParamAlias("id", "customer_id", getCartHandler(d.Carts)))
		crt.POST("", withParamAlias("id", "customer_id", addToCartHandler(d.Carts, d.Products)))
		crt.PUT("/:item_id", withParamAlias("id", "customer_id", updateCartItemHandler(d.Carts)))
		crt.DELETE("/:item_id", withParamAlias("id", "customer_id", removeCartItemHandler(d.Carts)))
		crt.DELETE("", withParamAlias("id", "customer_id", clearCartHandler(d.Carts)))
	}

	// Checkout and customer orders.
	r.POST("/checkout", checkoutHandler(d.Engine, d.Carts, d.Settings))
	r.GET("/orders/:ref", getOrderByRefHandler(d.Orders, d.Settings))
	r.POST("/orders/:ref/cancel", cancelOrderHandler(d.Engine, d.Orders))
	r.GET("/customers/:id/orders", withParamAlias("id", "customer_id", listMyOrdersHandler(d.Orders, d.Settings)))

	// Chat.
	r.POST("/chat/sessions", startChatHandler(d.Chat))
	r.POST("/chat/sessions/:session_id/messages", chatMessageHandler(d.Chat))
	r.GET("/chat/sessions/:session_id/messages", chatHistoryHandler(d.Chat))

	// Design studio.
	r.POST("/design/generate", generateDesignHandler(d.Designs))

	// PSGC lookups.
	r.GET("/psgc/:kind/:code", resolvePSGCHandler(d.Addresses))
	r.POST("/address/format", formatAddressHandler(d.Addresses))

	// Feedback.
	r.POST("/feedback", createFeedbackHandler(d.Feedback))

	// Staff routes.
	admin := r.Group("/admin")
	{
		admin.POST("/products", createProductHandler(d.Products))
		admin.PUT("/products/:id", updateProductHandler(d.Products))
		admin.DELETE("/products/:id", deleteProductHandler(d.Products))

		admin.GET("/inventory", listInventoryHandler(d.Inventory))
		admin.POST("/inventory", createInventoryItemHandler(d.Inventory))
		admin.PUT("/inventory/:id", setInventoryQuantityHandler(d.Inventory))
		admin.DELETE("/inventory/:id", deleteInventoryItemHandler(d.Inventory))

		admin.GET("/shipping/rates", listRatesHandler(d.Rates))
		admin.PUT("/shipping/rates", upsertRateHandler(d.Rates))

		admin.GET("/orders", adminListOrdersHandler(d.Orders, d.Settings))
		admin.GET("/orders/counts", adminOrderCountsHandler(d.Orders))
		admin.PUT("/orders/:id/status", adminUpdateStatusHandler(d.Engine))
		admin.PUT("/orders/status", adminBulkUpdateStatusHandler(d.Engine))
		admin.DELETE("/orders/:id", adminDeleteOrderHandler(d.Orders))
		admin.POST("/orders/sweep", adminSweepHandler(d.Engine))

		admin.GET("/chat/waiting", chatWaitingHandler(d.Chat))
		admin.POST("/chat/sessions/:session_id/reply", chatStaffReplyHandler(d.Chat))
		admin.POST("/chat/sessions/:session_id/resolve", chatResolveHandler(d.Chat))

		admin.GET("/feedback", listFeedbackHandler(d.Feedback))
	}

	return r
}

// withParamAlias copies one route param under another name so handlers can
// keep their own param vocabulary regardless of how routes nest.
func withParamAlias(from, to string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: to, Value: c.Param(from)})
		h(c)
	}
}

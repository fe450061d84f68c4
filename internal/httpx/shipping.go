package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/worksteamwear/storefront/internal/shipping"
)

type upsertRateRequest struct {
	Courier           string `json:"courier"`
	OriginRegion      string `json:"origin_region" binding:"required"`
	DestinationRegion string `json:"destination_region" binding:"required"`
	WeightKg          string `json:"weight_kg" binding:"required"`
	PricePHP          string `json:"price_php" binding:"required"`
}

func listRatesHandler(store shipping.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rates, err := store.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rates": rates})
	}
}

func upsertRateHandler(store shipping.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		weight, err := decimal.NewFromString(req.WeightKg)
		if err != nil {
			badRequest(c, "invalid weight_kg")
			return
		}
		price, err := decimal.NewFromString(req.PricePHP)
		if err != nil {
			badRequest(c, "invalid price_php")
			return
		}
		courier := req.Courier
		if courier == "" {
			courier = shipping.StandardCourier
		}
		r := &shipping.Rate{
			Courier:           courier,
			OriginRegion:      req.OriginRegion,
			DestinationRegion: req.DestinationRegion,
			WeightKg:          weight,
			PricePHP:          price,
		}
		if err := store.Upsert(c.Request.Context(), r); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// quoteFeeHandler prices a parcel for an origin/destination pair. Region
// codes like "R4A" are accepted and canonicalized.
func quoteFeeHandler(svc *shipping.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Query("origin")
		destination := c.Query("destination")
		if destination == "" {
			badRequest(c, "destination is required")
			return
		}
		weight, err := strconv.ParseFloat(c.DefaultQuery("weight_kg", "0.5"), 64)
		if err != nil || weight <= 0 {
			badRequest(c, "invalid weight_kg")
			return
		}
		var fee decimal.Decimal
		if origin == "" {
			fee = svc.CheckoutFee(c.Request.Context(), destination)
		} else {
			fee = svc.Fee(c.Request.Context(), origin, destination, weight)
		}
		c.JSON(http.StatusOK, gin.H{
			"destination": svc.CanonicalRegion(destination),
			"weight_kg":   weight,
			"fee":         fee,
		})
	}
}

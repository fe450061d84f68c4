package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worksteamwear/storefront/internal/address"
)

var psgcKinds = map[string]address.Kind{
	"regions":   address.KindRegion,
	"provinces": address.KindProvince,
	"citymun":   address.KindCityMun,
	"barangays": address.KindBarangay,
}

func resolvePSGCHandler(resolver *address.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := psgcKinds[c.Param("kind")]
		if !ok {
			badRequest(c, "kind must be one of regions, provinces, citymun, barangays")
			return
		}
		code := c.Param("code")
		c.JSON(http.StatusOK, gin.H{
			"code": code,
			"name": resolver.Resolve(c.Request.Context(), kind, code),
		})
	}
}

type formatAddressRequest struct {
	Street     string `json:"street"`
	Barangay   string `json:"barangay"`
	CityMun    string `json:"city_municipality"`
	Province   string `json:"province"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// formatAddressHandler resolves PSGC codes in the payload and returns the
// assembled one-line delivery address.
func formatAddressHandler(resolver *address.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req formatAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		ctx := c.Request.Context()
		full := address.FullAddress(
			req.Street,
			resolver.BarangayName(ctx, req.Barangay),
			resolver.CityMunName(ctx, req.CityMun),
			resolver.ProvinceName(ctx, req.Province),
			resolver.RegionName(ctx, req.Region),
			req.PostalCode,
		)
		c.JSON(http.StatusOK, gin.H{"address": full})
	}
}

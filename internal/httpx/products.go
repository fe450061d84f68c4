package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/inventory"
)

// createProductHandler godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product body catalog.CreateProductRequest true "Product"
// @Success      201 {object} catalog.Product
// @Failure      400 {object} catalog.HTTPError
// @Router       /products [post]
func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.Name == "" || req.Price == "" {
			badRequest(c, "name and price are required")
			return
		}
		if req.Size != "" && !catalog.ValidSize(req.Size) {
			badRequest(c, "size must be one of XS, S, M, L, XL")
			return
		}
		p := &catalog.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Quantity:    req.Quantity,
			Size:        req.Size,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// getProductHandler godoc
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} catalog.Product
// @Failure      404 {object} catalog.HTTPError
// @Router       /products/{id} [get]
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// listProductsHandler godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        q      query string false "search"
// @Param        limit  query int    false "limit"
// @Param        offset query int    false "offset"
// @Success      200 {object} catalog.ListResponse
// @Router       /products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		q := catalog.Query{Q: c.Query("q"), Limit: limit, Offset: offset}

		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{
			Q: q.Q, Limit: limit, Offset: offset, Items: items,
		})
	}
}

func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.Size != "" && !catalog.ValidSize(req.Size) {
			badRequest(c, "size must be one of XS, S, M, L, XL")
			return
		}
		p := &catalog.Product{
			ID:          c.Param("id"),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Quantity:    req.Quantity,
			Size:        req.Size,
		}
		if err := repo.Update(c.Request.Context(), p, req.Price != ""); err != nil {
			fail(c, err)
			return
		}
		out, err := repo.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		if !ok {
			fail(c, catalog.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// productSizesHandler reports per-size availability for one product, joining
// the stock ledger against the catalog row.
func productSizesHandler(repo catalog.Repository, stock inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		sizes, err := inventory.SizeStock(c.Request.Context(), stock, p.Name, p.Size, p.Quantity, catalog.Sizes)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_id": p.ID, "sizes": sizes})
	}
}

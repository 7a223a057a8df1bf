package product_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description List catalog products filtered and sorted by the shareable query parameters
// @Tags store
// @Produce json
// @Param brands query string false "Comma-joined brand names"
// @Param colors query string false "Comma-joined colors"
// @Param sizes query string false "Comma-joined sizes"
// @Param priceMin query number false "Minimum price" default(0)
// @Param priceMax query number false "Maximum price" default(500)
// @Param inStock query string false "Only in-stock products" Enums(true)
// @Param onSale query string false "Only discounted products" Enums(true)
// @Param sort query string false "Sort order" Enums(featured, newest, price-low, price-high, rating) default(featured)
// @Param search query string false "Search name, brand and category"
// @Param filter query string false "Special filter" Enums(new, new-arrivals, sale)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse{data=models.ProductListing}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products [get]
func (ctl *Controller) GetStorefrontProducts(c *gin.Context) {
	ctl.listProducts(c, "")
}

// GetCategoryProducts godoc
// @Summary Get storefront products of a category
// @Description Same as the product listing, constrained to the category path segment
// @Tags store
// @Produce json
// @Param category path string true "Category slug" example(hoodies)
// @Success 200 {object} models.ApiResponse{data=models.ProductListing}
// @Failure 500 {object} models.ApiResponse
// @Router /store/categories/{category}/products [get]
func (ctl *Controller) GetCategoryProducts(c *gin.Context) {
	ctl.listProducts(c, c.Param("category"))
}

func (ctl *Controller) listProducts(c *gin.Context, category string) {
	page, limit := parsePagination(c)

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	products, err := ctl.repo.List(ctx)
	if err != nil {
		ctl.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	criteria := catalog.FromQuery(c.Request.URL.Query(), ctl.cfg)
	criteria.Category = category
	results := catalog.Apply(products, criteria)

	meta := models.NewPagination(page, limit, len(results))
	start, end := meta.Window()

	listing := models.ProductListing{
		Products:      results[start:end],
		Query:         catalog.ToQuery(criteria, ctl.cfg).Encode(),
		Category:      category,
		ActiveFilters: criteria.ActiveCount(ctl.cfg),
		ResultCount:   len(results),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", listing, meta))
}

package cart_controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// AddCartItem godoc
// @Summary Add a product to the cart
// @Description Adds a product in the chosen size and color. Adding an existing line increases its quantity up to the line maximum.
// @Tags cart
// @Accept json
// @Produce json
// @Param body body models.AddCartItemRequest true "Product id or slug, size, color and quantity"
// @Success 201 {object} models.ApiResponse{data=models.CartResponse}
// @Success 200 {object} models.ApiResponse{data=models.CartResponse} "Line already at its maximum quantity"
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /cart/items [post]
func (ctl *Controller) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Size and color are required"))
		return
	}
	if strings.TrimSpace(req.ProductID) == "" && strings.TrimSpace(req.Slug) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "productId or slug is required"))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	product, err := ctl.lookupProduct(ctx, req)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		ctl.log.Error("failed to fetch product for cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add item to cart"))
		return
	}

	if !product.InStock {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, product.Name+" is out of stock"))
		return
	}
	if !product.OffersSize(req.Size) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Size "+req.Size+" is not available for "+product.Name))
		return
	}
	if !product.OffersColor(req.Color) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Color "+req.Color+" is not available for "+product.Name))
		return
	}

	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item, changed := store.AddItem(models.NewCartItem(product, req.Size, req.Color, quantity))

	status := http.StatusCreated
	if !changed {
		status = http.StatusOK
	}
	c.JSON(status, models.SuccessResponse(c, cart.Added(item, changed).Message, cartResponse(store)))
}

func (ctl *Controller) lookupProduct(ctx context.Context, req models.AddCartItemRequest) (models.Product, error) {
	if id := strings.TrimSpace(req.ProductID); id != "" {
		return ctl.repo.GetByID(ctx, id)
	}
	return ctl.repo.GetBySlug(ctx, strings.TrimSpace(req.Slug))
}

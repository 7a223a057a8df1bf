package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
)

// RemoveCartItem godoc
// @Summary Remove a line from the cart
// @Tags cart
// @Produce json
// @Param id query string true "Product id"
// @Param size query string false "Size"
// @Param color query string false "Color"
// @Success 200 {object} models.ApiResponse{data=models.CartResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /cart/items [delete]
func (ctl *Controller) RemoveCartItem(c *gin.Context) {
	var key models.CartKey
	if err := c.ShouldBindQuery(&key); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "id is required"))
		return
	}

	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()

	item, found := store.RemoveItem(key)
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, cart.Removed(item).Message, cartResponse(store)))
}

package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
)

// UpdateCartItem godoc
// @Summary Change the quantity of a cart line
// @Description Sets the quantity of the line identified by product id, size and color. Zero or less removes the line; larger values are capped at the line maximum.
// @Tags cart
// @Accept json
// @Produce json
// @Param body body models.UpdateCartItemRequest true "Line identity and the new quantity"
// @Success 200 {object} models.ApiResponse{data=models.CartResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /cart/items [patch]
func (ctl *Controller) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()

	if !store.UpdateQuantity(req.CartKey, req.Quantity) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
		return
	}

	message := "Cart item updated"
	if req.Quantity <= 0 {
		message = "Cart item removed"
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, message, cartResponse(store)))
}

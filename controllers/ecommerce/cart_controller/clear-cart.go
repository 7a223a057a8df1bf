package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
)

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.CartResponse}
// @Router /cart [delete]
func (ctl *Controller) ClearCart(c *gin.Context) {
	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()
	store.ClearCart()
	c.JSON(http.StatusOK, models.SuccessResponse(c, cart.Cleared().Message, cartResponse(store)))
}

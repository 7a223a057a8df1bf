package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
)

// GetCart godoc
// @Summary Get the current cart
// @Description Returns the cart lines and derived totals of the shopper's session
// @Tags cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.CartResponse}
// @Failure 500 {object} models.ApiResponse
// @Router /cart [get]
func (ctl *Controller) GetCart(c *gin.Context) {
	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", cartResponse(store)))
}

package cart_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// GetCartSummary godoc
// @Summary Price the cart
// @Description Subtotal, savings, coupon discount, shipping and total for the current cart
// @Tags cart
// @Produce json
// @Param coupon query string false "Coupon code" example(BANGIN10)
// @Param shipping query string false "Shipping method" Enums(standard, express) default(standard)
// @Success 200 {object} models.ApiResponse{data=models.OrderSummary}
// @Failure 400 {object} models.ApiResponse
// @Router /cart/summary [get]
func (ctl *Controller) GetCartSummary(c *gin.Context) {
	store, release, ok := ctl.storeFor(c)
	if !ok {
		return
	}
	defer release()

	summary, err := ctl.checkout.Quote(store.Items(), c.Query("coupon"), c.Query("shipping"))
	switch {
	case errors.Is(err, services.ErrUnknownCoupon):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid coupon code"))
		return
	case errors.Is(err, services.ErrUnknownShipping):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown shipping method"))
		return
	case err != nil:
		ctl.log.Error("failed to price cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to price cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart summary fetched", summary))
}

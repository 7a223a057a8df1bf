package checkout_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
)

// GetShippingMethods godoc
// @Summary List shipping methods
// @Tags checkout
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.ShippingMethod}
// @Router /checkout/shipping-methods [get]
func (ctl *Controller) GetShippingMethods(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Shipping methods fetched", ctl.checkout.ShippingMethods()))
}

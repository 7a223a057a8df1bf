package checkout_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/middleware"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// PlaceOrder godoc
// @Summary Place an order
// @Description Validates the checkout form, prices the cart, simulates payment and empties the cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body models.CheckoutRequest true "Contact, address, shipping, payment and coupon"
// @Success 201 {object} models.ApiResponse{data=models.OrderConfirmation}
// @Failure 400 {object} models.ApiResponse
// @Failure 422 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /checkout [post]
func (ctl *Controller) PlaceOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	sessionID, ok := middleware.GetCartSession(c)
	if !ok {
		ctl.log.Error("cart session missing from request context")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Cart session unavailable"))
		return
	}
	store, release := ctl.sessions.Acquire(c.Request.Context(), sessionID)
	defer release()

	conf, err := ctl.checkout.PlaceOrder(c.Request.Context(), store, req)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed successfully", conf))
}

func (ctl *Controller) respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := models.ErrorResponse(c, "Please check your details")
		resp.Data = verr.Fields
		c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Your cart is empty"))
	case errors.Is(err, services.ErrUnknownCoupon):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid coupon code"))
	case errors.Is(err, services.ErrUnknownShipping):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown shipping method"))
	default:
		ctl.log.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to place order"))
	}
}

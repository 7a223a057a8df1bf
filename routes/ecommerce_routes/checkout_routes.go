package ecommerce_routes

import (
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/checkout_controller"
	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes registers checkout behind the given middleware, which
// must include middleware.CartSession.
func SetupCheckoutRoutes(router *gin.RouterGroup, checkout *checkout_controller.Controller, mw ...gin.HandlerFunc) {
	checkoutRoutes := router.Group("/checkout", mw...)
	{
		checkoutRoutes.POST("", checkout.PlaceOrder)
		checkoutRoutes.GET("/shipping-methods", checkout.GetShippingMethods)
		checkoutRoutes.GET("/orders/:number/receipt", checkout.DownloadReceipt)
	}
}

package ecommerce_routes

import (
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/cart_controller"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers the cart endpoints behind the given middleware,
// which must include middleware.CartSession.
func SetupCartRoutes(router *gin.RouterGroup, carts *cart_controller.Controller, mw ...gin.HandlerFunc) {
	cartRoutes := router.Group("/cart", mw...)
	{
		cartRoutes.GET("", carts.GetCart)
		cartRoutes.DELETE("", carts.ClearCart)
		cartRoutes.GET("/summary", carts.GetCartSummary)

		cartRoutes.POST("/items", carts.AddCartItem)
		cartRoutes.PATCH("/items", carts.UpdateCartItem)
		cartRoutes.DELETE("/items", carts.RemoveCartItem)
	}
}

package ecommerce_routes

import (
	store_category "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/category_controller"
	store_filter "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/filter_controller"
	store_product "github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(
	router *gin.RouterGroup,
	products *store_product.Controller,
	categories *store_category.Controller,
	filters *store_filter.Controller,
) {
	// Storefront routes (public, no session required)
	store := router.Group("/store")

	// Product routes
	productRoutes := store.Group("/products")
	{
		productRoutes.GET("", products.GetStorefrontProducts)             // List with filters
		productRoutes.GET("/:slug", products.GetStorefrontProductBySlug) // Single product
	}

	// Category routes
	categoryRoutes := store.Group("/categories")
	{
		categoryRoutes.GET("", categories.GetCategories)                       // List all
		categoryRoutes.GET("/:category/products", products.GetCategoryProducts) // Category listing
	}

	store.GET("/filters/metadata", filters.GetFilterMetadata)
	store.POST("/filters", filters.UpdateFilters)
}

package category_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCategories godoc
// @Summary Get storefront categories
// @Description Get every category in the catalog with its product count, in catalog order
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.FacetOption}
// @Failure 500 {object} models.ApiResponse
// @Router /store/categories [get]
func (ctl *Controller) GetCategories(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	products, err := ctl.repo.List(ctx)
	if err != nil {
		ctl.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", catalog.BuildMetadata(products).Categories))
}

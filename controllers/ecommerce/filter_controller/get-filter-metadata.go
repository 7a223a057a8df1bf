package filter_controller

import (
	"net/http"
	"strings"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetFilterMetadata godoc
// @Summary Get all filter metadata
// @Description Returns availability counts, facet options with counts, price range and sort options for storefront filters
// @Tags store
// @Produce json
// @Param category query string false "Restrict the facets to one category"
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /store/filters/metadata [get]
func (ctl *Controller) GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	products, err := ctl.repo.List(ctx)
	if err != nil {
		ctl.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		criteria := catalog.NewCriteria(ctl.cfg)
		criteria.Category = category
		products = catalog.Apply(products, criteria)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", catalog.BuildMetadata(products)))
}

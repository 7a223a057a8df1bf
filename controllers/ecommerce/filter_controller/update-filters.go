package filter_controller

import (
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Filter panel operations accepted by UpdateFilters
const (
	OpToggleBrand   = "toggle_brand"
	OpToggleColor   = "toggle_color"
	OpToggleSize    = "toggle_size"
	OpSetPriceRange = "set_price_range"
	OpSetInStock    = "set_in_stock"
	OpSetOnSale     = "set_on_sale"
	OpSetSort       = "set_sort"
	OpSetSearch     = "set_search"
	OpSetFilter     = "set_filter"
	OpRemoveFilter  = "remove_filter"
	OpClearAll      = "clear_all"
)

var errUnknownOp = errors.New("unknown filter operation")

// UpdateFilters godoc
// @Summary Apply filter panel changes to a listing query
// @Description Replays filter interactions over the current query string and returns the new shareable query
// @Tags store
// @Accept json
// @Produce json
// @Param body body models.FilterUpdateRequest true "Current query and the interactions to apply"
// @Success 200 {object} models.ApiResponse{data=models.FilterUpdateResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/filters [post]
func (ctl *Controller) UpdateFilters(c *gin.Context) {
	var req models.FilterUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	state := catalog.NewURLQuery(req.Query)
	syncer := catalog.NewSynchronizer(state, req.Category, ctl.cfg)
	for _, action := range req.Actions {
		if err := applyAction(syncer, action); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	products, err := ctl.repo.List(ctx)
	if err != nil {
		ctl.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to apply filters"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters applied", models.FilterUpdateResponse{
		Query:         state.Encode(),
		ActiveFilters: syncer.ActiveFilterCount(),
		ResultCount:   len(syncer.Apply(products)),
	}))
}

func applyAction(syncer *catalog.Synchronizer, a models.FilterAction) error {
	switch a.Op {
	case OpToggleBrand:
		syncer.ToggleBrand(a.Value)
	case OpToggleColor:
		syncer.ToggleColor(a.Value)
	case OpToggleSize:
		syncer.ToggleSize(a.Value)
	case OpSetPriceRange:
		current := syncer.Criteria()
		lo, hi := current.PriceMin, current.PriceMax
		if a.Min != nil {
			lo = *a.Min
		}
		if a.Max != nil {
			hi = *a.Max
		}
		syncer.SetPriceRange(lo, hi)
	case OpSetInStock:
		syncer.SetInStockOnly(a.Enabled)
	case OpSetOnSale:
		syncer.SetOnSaleOnly(a.Enabled)
	case OpSetSort:
		syncer.SetSort(a.Value)
	case OpSetSearch:
		syncer.SetSearch(a.Value)
	case OpSetFilter:
		syncer.SetSpecialFilter(a.Value)
	case OpRemoveFilter:
		syncer.RemoveFilter(catalog.FilterKind(a.Kind), a.Value)
	case OpClearAll:
		syncer.ClearAll()
	default:
		return errors.Wrapf(errUnknownOp, "%q", a.Op)
	}
	return nil
}

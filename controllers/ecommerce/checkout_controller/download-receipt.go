package checkout_controller

import (
	"fmt"
	"net/http"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// DownloadReceipt godoc
// @Summary Download an order receipt
// @Description Renders the PDF receipt of a recently placed order
// @Tags checkout
// @Produce application/pdf
// @Param number path string true "Order number" example(BG-1A2B3C4D)
// @Success 200 {file} file
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /checkout/orders/{number}/receipt [get]
func (ctl *Controller) DownloadReceipt(c *gin.Context) {
	number := c.Param("number")

	conf, err := ctl.checkout.GetOrder(number)
	if errors.Is(err, services.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}

	pdf, err := services.RenderReceipt(conf)
	if err != nil {
		ctl.log.Error("failed to render receipt", zap.String("order_number", number), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate receipt"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "receipt-"+conf.OrderNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

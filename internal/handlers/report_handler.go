package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/filter"
	"fintrack/internal/services"
)

// ReportHandler handles dashboard aggregation requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles the dashboard aggregation request.
// @Summary     Get dashboard
// @Description Get summary totals, monthly series, category breakdown, and budget statuses. Filters narrow the totals, series, and breakdown; budget statuses always cover the reference month in full
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month      query string false "Reference month (YYYY-MM, defaults to current)"
// @Param       type       query string false "income, expense, or all"
// @Param       category   query string false "Category ID or all"
// @Param       start_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param       search     query string false "Case-insensitive match on description or merchant"
// @Success     200 {object} report.Dashboard "Dashboard data"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Filter values never fail validation; malformed ones just don't constrain.
	var spec filter.Spec
	_ = c.ShouldBindQuery(&spec)

	dashboard, err := h.reportService.GetDashboard(userID, spec, c.Query("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

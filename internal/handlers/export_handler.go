package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/filter"
	"fintrack/internal/services"
)

// ExportHandler handles transaction export requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportTransactions handles downloading transactions as CSV.
// @Summary     Export transactions
// @Description Download the user's transactions as a CSV file, narrowed by the same filters as the transaction list
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       type       query string false "income, expense, or all"
// @Param       category   query string false "Category ID or all"
// @Param       start_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param       search     query string false "Case-insensitive match on description or merchant"
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/transactions [get]
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Filter values never fail validation; malformed ones just don't constrain.
	var spec filter.Spec
	_ = c.ShouldBindQuery(&spec)

	data, err := h.exportService.ExportTransactionsCSV(userID, spec)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "transactions_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the sales events and sales summary panels.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func bindFilter(c *gin.Context) (models.SalesFilter, bool) {
	var filter models.SalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondValidation(c, err)
		return filter, false
	}
	return filter, true
}

// GetSalesEvents handles the sales events panel.
func (h *ReportHandler) GetSalesEvents(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	events, err := h.reportService.Events(c.Request.Context(), session, filter)
	if err != nil {
		respondError(c, "GetSalesEvents: Error from reportService.Events", "Failed to fetch sales data", err)
		return
	}
	if events == nil {
		events = []models.SaleEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "salesEvents": events})
}

// GetSalesSummary handles the sales summary panel.
func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), session, filter)
	if err != nil {
		respondError(c, "GetSalesSummary: Error from reportService.Summary", "Failed to fetch sales summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary.Rows, "totals": summary.Totals})
}

// ExportSalesEvents downloads the events panel as CSV.
func (h *ReportHandler) ExportSalesEvents(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportEventsCSV(c.Request.Context(), session, filter, &buf); err != nil {
		respondError(c, "ExportSalesEvents: Error from reportService.ExportEventsCSV", "Failed to export sales data", err)
		return
	}
	c.Header("Content-Disposition", attachment("sales-events", "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportSalesSummary downloads the summary panel as an Excel workbook.
func (h *ReportHandler) ExportSalesSummary(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportSummaryXLSX(c.Request.Context(), session, filter, &buf); err != nil {
		respondError(c, "ExportSalesSummary: Error from reportService.ExportSummaryXLSX", "Failed to export sales summary", err)
		return
	}
	c.Header("Content-Disposition", attachment("sales-summary", "xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func attachment(name, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s-%s.%s"`, name, time.Now().Format("20060102"), ext)
}

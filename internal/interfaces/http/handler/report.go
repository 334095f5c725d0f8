package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/firf18/red-salud-sub010/internal/application/report"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes the fiscal book reports over HTTP
type ReportHandler struct {
	BaseHandler
	service *report.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *report.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// parsePeriod reads the start/end query parameters as dates. The end date
// is extended to the last instant of its day so the period is inclusive.
func (h *ReportHandler) parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		h.BadRequest(c, "start must be a date in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		h.BadRequest(c, "end must be a date in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		h.BadRequest(c, "end cannot be before start")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// SalesBook handles GET /api/v1/reports/sales-book
func (h *ReportHandler) SalesBook(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	h.Success(c, h.service.SalesBookReport(start, end))
}

// PurchaseBook handles GET /api/v1/reports/purchase-book
func (h *ReportHandler) PurchaseBook(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	h.Success(c, h.service.PurchaseBookReport(start, end))
}

// ExportSalesBook handles GET /api/v1/reports/sales-book/export
func (h *ReportHandler) ExportSalesBook(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	data, err := h.service.ExportSalesBook(start, end)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.sendWorkbook(c, "sales-book", start, end, data)
}

// ExportPurchaseBook handles GET /api/v1/reports/purchase-book/export
func (h *ReportHandler) ExportPurchaseBook(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	data, err := h.service.ExportPurchaseBook(start, end)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.sendWorkbook(c, "purchase-book", start, end, data)
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, name string, start, end time.Time, data []byte) {
	filename := fmt.Sprintf("%s_%s_%s.xlsx", name, start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package controller

import (
	"net/http"
	"time"

	"github.com/adiprakosa/kasirpos/internal/app/service"
	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

func reportDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Date must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

// DailySales returns the sales summary for one day (admin)
// GET /api/v1/reports/sales/daily?date=2023-10-27
func (ctrl *ReportController) DailySales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	day, ok := reportDay(c)
	if !ok {
		return
	}

	report, err := ctrl.reportService.DailySales(day)
	if err != nil {
		log.Error("Failed to build daily sales report", err, map[string]interface{}{
			"date": day.Format("2006-01-02"),
		})
		apperrors.InternalError(c, "Failed to build sales report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ExportDailySales streams the daily summary as a spreadsheet (admin)
// GET /api/v1/reports/sales/daily/export?date=2023-10-27
func (ctrl *ReportController) ExportDailySales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	day, ok := reportDay(c)
	if !ok {
		return
	}

	data, filename, err := ctrl.reportService.ExportDailySalesXLSX(day)
	if err != nil {
		log.Error("Failed to export daily sales report", err, map[string]interface{}{
			"date": day.Format("2006-01-02"),
		})
		apperrors.InternalError(c, "Failed to export sales report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

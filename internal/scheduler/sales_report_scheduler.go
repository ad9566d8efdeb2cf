package scheduler

import (
	"time"

	"github.com/adiprakosa/kasirpos/internal/app/service"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SalesReportScheduler builds the end-of-day sales summary after close
type SalesReportScheduler struct {
	cron          *cron.Cron
	reportService service.ReportService
}

func NewSalesReportScheduler(reportService service.ReportService) *SalesReportScheduler {
	return &SalesReportScheduler{
		cron:          cron.New(),
		reportService: reportService,
	}
}

// Start registers the nightly job. The store closes at 21:00, so the
// summary runs at 21:30 over the finished day.
func (s *SalesReportScheduler) Start() error {
	_, err := s.cron.AddFunc("30 21 * * *", func() {
		logger.Info("Starting scheduled daily sales report", nil)

		report, err := s.reportService.DailySales(time.Now())
		if err != nil {
			logger.Error("Failed to build daily sales report from scheduler", err)
			return
		}

		logger.Info("Daily sales report completed", map[string]interface{}{
			"date":        report.Date,
			"order_count": report.OrderCount,
			"items_sold":  report.ItemsSold,
			"gross_sales": report.GrossSales,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for daily sales report", err)
		return err
	}

	s.cron.Start()
	logger.Info("Sales report scheduler started successfully (daily at 9:30 PM)", nil)

	return nil
}

// Stop stops the scheduler
func (s *SalesReportScheduler) Stop() {
	logger.Info("Stopping sales report scheduler...", nil)
	s.cron.Stop()
	logger.Info("Sales report scheduler stopped", nil)
}

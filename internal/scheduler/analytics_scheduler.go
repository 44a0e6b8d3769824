package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/florashop/flora-backend/internal/app/service"
	"github.com/florashop/flora-backend/pkg/logger"
)

// AnalyticsScheduler refreshes the dashboard snapshot on a fixed
// schedule so the back-office reads precomputed totals.
type AnalyticsScheduler struct {
	cron             *cron.Cron
	analyticsService service.AnalyticsService
}

func NewAnalyticsScheduler(analyticsService service.AnalyticsService) *AnalyticsScheduler {
	return &AnalyticsScheduler{
		cron:             cron.New(),
		analyticsService: analyticsService,
	}
}

func (s *AnalyticsScheduler) Start() error {
	// Hourly, on the hour.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled analytics refresh", nil)

		if err := s.analyticsService.RefreshSnapshot(); err != nil {
			logger.Error("Failed to refresh analytics snapshot from scheduler", err)
			return
		}

		logger.Info("Analytics snapshot refreshed from scheduler", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for analytics refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Analytics scheduler started (hourly)", nil)

	return nil
}

func (s *AnalyticsScheduler) Stop() {
	logger.Info("Stopping analytics scheduler...", nil)
	s.cron.Stop()
	logger.Info("Analytics scheduler stopped", nil)
}

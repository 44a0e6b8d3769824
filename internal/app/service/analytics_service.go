package service

import (
	"sort"
	"time"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/pkg/logger"
)

// DateSales is one day's order revenue.
type DateSales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// DashboardData is the back-office analytics payload.
type DashboardData struct {
	Snapshot       model.AnalyticsSnapshot  `json:"snapshot"`
	OrdersByStatus []repository.StatusCount `json:"orders_by_status"`
	SalesByDate    []DateSales              `json:"sales_by_date"`
}

type AnalyticsService interface {
	RefreshSnapshot() error
	Dashboard() (*DashboardData, error)
}

type analyticsService struct {
	orderRepo     repository.OrderRepository
	userRepo      repository.UserRepository
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	analyticsRepo repository.AnalyticsRepository,
) AnalyticsService {
	return &analyticsService{
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
	}
}

// RefreshSnapshot recomputes the storefront totals and stores them.
func (s *analyticsService) RefreshSnapshot() error {
	totalSales, totalOrders, err := s.orderRepo.Totals()
	if err != nil {
		logger.Error("Failed to compute order totals", err)
		return err
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		logger.Error("Failed to count users", err)
		return err
	}

	snapshot := &model.AnalyticsSnapshot{
		TotalSales:  totalSales,
		TotalOrders: totalOrders,
		TotalUsers:  totalUsers,
		LastUpdated: time.Now(),
	}

	if err := s.analyticsRepo.Save(snapshot); err != nil {
		return err
	}

	logger.Info("Analytics snapshot refreshed", map[string]interface{}{
		"total_sales":  totalSales,
		"total_orders": totalOrders,
		"total_users":  totalUsers,
	})
	return nil
}

// Dashboard aggregates orders by status and revenue by calendar day.
// The per-day bucketing happens here rather than in SQL so the same
// query works on every supported database.
func (s *analyticsService) Dashboard() (*DashboardData, error) {
	snapshot, err := s.analyticsRepo.Latest()
	if err != nil {
		// No snapshot yet: compute one on the fly.
		if refreshErr := s.RefreshSnapshot(); refreshErr != nil {
			return nil, refreshErr
		}
		snapshot, err = s.analyticsRepo.Latest()
		if err != nil {
			return nil, err
		}
	}

	byStatus, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]float64)
	for _, order := range orders {
		day := order.OrderDate.Format("2006-01-02")
		buckets[day] += order.TotalPrice
	}

	salesByDate := make([]DateSales, 0, len(buckets))
	for day, total := range buckets {
		salesByDate = append(salesByDate, DateSales{Date: day, Total: total})
	}
	sort.Slice(salesByDate, func(i, j int) bool {
		return salesByDate[i].Date < salesByDate[j].Date
	})

	return &DashboardData{
		Snapshot:       *snapshot,
		OrdersByStatus: byStatus,
		SalesByDate:    salesByDate,
	}, nil
}

package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/filter"
	"fintrack/internal/models"
	"fintrack/internal/report"
)

// reportService assembles dashboard data. It only gathers owner-scoped rows;
// all computation happens in the pure report package.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetDashboard loads the user's transactions, categories, and budgets,
// narrows the transactions by the filter spec for display, and computes the
// dashboard for the given reference month (current month when empty).
func (s *reportService) GetDashboard(userID string, spec filter.Spec, month string) (*report.Dashboard, error) {
	if month == "" {
		month = time.Now().Format(report.MonthLayout)
	} else if _, err := time.Parse(report.MonthLayout, month); err != nil {
		return nil, apperrors.ErrInvalidBudgetMonth
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filtered := filter.Apply(transactions, spec)
	dashboard := report.BuildDashboard(filtered, transactions, categories, budgets, month)
	return &dashboard, nil
}

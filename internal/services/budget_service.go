package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/report"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// UpsertBudget creates or overwrites the budget for (user, month, category).
// A nil category addresses the month's overall budget. The month must be a
// parseable YYYY-MM calendar month and the warning threshold must lie in
// (0, 1]; zero means "use the default".
func (s *budgetService) UpsertBudget(userID, month string, categoryID *string, amount int64, warningPct float64) (*models.Budget, error) {
	if _, err := time.Parse(report.MonthLayout, month); err != nil {
		return nil, apperrors.ErrInvalidBudgetMonth
	}
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if warningPct == 0 {
		warningPct = models.DefaultWarningPct
	}
	if warningPct <= 0 || warningPct > 1 {
		return nil, apperrors.ErrInvalidWarningPct
	}

	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	query := s.db.Where("user_id = ? AND month = ?", userID, month)
	if categoryID == nil {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", *categoryID)
	}

	var budget models.Budget
	err := query.First(&budget).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"amount":      amount,
			"warning_pct": warningPct,
		}
		if err := s.db.Model(&budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			UserID:     userID,
			CategoryID: categoryID,
			Month:      month,
			Amount:     amount,
			WarningPct: warningPct,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetUserBudgets returns the user's budgets, optionally restricted to one
// month, ordered by month then creation time.
func (s *budgetService) GetUserBudgets(userID, month string) ([]models.Budget, error) {
	base := s.db.Where("user_id = ?", userID)
	if month != "" {
		if _, err := time.Parse(report.MonthLayout, month); err != nil {
			return nil, apperrors.ErrInvalidBudgetMonth
		}
		base = base.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := base.Preload("Category").Preload("Category.Parent").
		Order("month ASC, created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// DeleteBudget soft-deletes a budget if it belongs to the user.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

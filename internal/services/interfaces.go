package services

import (
	"time"

	"fintrack/internal/filter"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/report"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, parentID *string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest, topLevelOnly bool) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string, parentID *string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, categoryID *string, transactionType models.TransactionType, amount int64, description, merchant string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, spec filter.Spec) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	UpsertBudget(userID, month string, categoryID *string, amount int64, warningPct float64) (*models.Budget, error)
	GetUserBudgets(userID, month string) ([]models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// ReportServicer defines the contract for dashboard aggregation.
type ReportServicer interface {
	GetDashboard(userID string, spec filter.Spec, month string) (*report.Dashboard, error)
}

// ExportServicer defines the contract for exporting transactions.
type ExportServicer interface {
	ExportTransactionsCSV(userID string, spec filter.Spec) ([]byte, error)
}

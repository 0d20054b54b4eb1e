package services

import (
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/filter"
	"fintrack/internal/models"
	"fintrack/internal/money"

	"github.com/gocarina/gocsv"
)

// transactionRow is one line of the CSV export.
type transactionRow struct {
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Merchant    string `csv:"Merchant"`
	Description string `csv:"Description"`
}

// exportService serializes filtered transaction sets for download.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// ExportTransactionsCSV returns the user's transactions matching the filter
// spec as CSV, newest first. Columns: Date (YYYY-MM-DD), Type, Amount with
// two decimals, category full name, merchant, and description (empty when
// absent).
func (s *exportService) ExportTransactionsCSV(userID string, spec filter.Spec) ([]byte, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").Preload("Category.Parent").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	matched := filter.Apply(transactions, spec)

	rows := make([]transactionRow, 0, len(matched))
	for _, tx := range matched {
		row := transactionRow{
			Date:        tx.Date.Format("2006-01-02"),
			Type:        exportType(tx.Type),
			Amount:      money.FormatCents(tx.Amount),
			Merchant:    tx.Merchant,
			Description: tx.Description,
		}
		if tx.Category != nil {
			row.Category = tx.Category.FullName()
		}
		rows = append(rows, row)
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return []byte(out), nil
}

func exportType(t models.TransactionType) string {
	if t == models.TransactionTypeIncome {
		return "Income"
	}
	return "Expense"
}

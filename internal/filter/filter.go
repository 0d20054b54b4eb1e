// Package filter narrows an in-memory transaction list by a user-supplied
// filter specification. Filtering is pure and fails open: a malformed
// value never produces an error, it simply stops constraining the result.
package filter

import (
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

const dateLayout = "2006-01-02"

// Spec is a filter specification as it arrives from a query string. All
// fields are optional; "all" and empty both mean "no constraint" for type
// and category.
type Spec struct {
	Type      string `form:"type"`
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

// Apply returns the transactions matching every constraint in the spec.
// Date bounds are inclusive: start_date matches from 00:00:00 and end_date
// through 23:59:59 of the named day. Search matches case-insensitively
// against description or merchant.
func Apply(transactions []models.Transaction, spec Spec) []models.Transaction {
	txType, hasType := parseType(spec.Type)
	categoryID, hasCategory := parseCategory(spec.Category)

	var start, end time.Time
	hasStart, hasEnd := false, false
	if t, err := time.Parse(dateLayout, strings.TrimSpace(spec.StartDate)); err == nil {
		start = t
		hasStart = true
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(spec.EndDate)); err == nil {
		end = t.Add(24*time.Hour - time.Second)
		hasEnd = true
	}

	search := strings.ToLower(strings.TrimSpace(spec.Search))

	matched := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if hasType && tx.Type != txType {
			continue
		}
		if hasCategory && (tx.CategoryID == nil || *tx.CategoryID != categoryID) {
			continue
		}
		if hasStart && tx.Date.Before(start) {
			continue
		}
		if hasEnd && tx.Date.After(end) {
			continue
		}
		if search != "" && !matchesSearch(tx, search) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// parseType maps a type value to a transaction type. Anything other than
// income or expense (case-insensitive) disables the type constraint.
func parseType(s string) (models.TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return models.TransactionTypeIncome, true
	case "expense":
		return models.TransactionTypeExpense, true
	}
	return "", false
}

// parseCategory accepts only a valid category id; "all", empty, and
// unparsable values disable the category constraint.
func parseCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") || !uuid.IsValid(s) {
		return "", false
	}
	return s, true
}

func matchesSearch(tx models.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(tx.Description), search) ||
		strings.Contains(strings.ToLower(tx.Merchant), search)
}

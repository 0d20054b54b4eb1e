// Package report is the aggregation engine: pure computations over a user's
// already-loaded transactions, categories, and budgets. Nothing in this
// package touches storage or fails; malformed data simply contributes
// nothing to the result.
package report

import (
	"fmt"
	"sort"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

// MonthLayout is the YYYY-MM format used for month labels and budget months.
const MonthLayout = "2006-01"

// UncategorizedLabel buckets expense transactions without a category in the
// category breakdown.
const UncategorizedLabel = "Uncategorized"

// Summary holds income/expense totals for a transaction set. Amounts are
// cents, so two-decimal presentation is exact.
type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	NetBalance   int64 `json:"net_balance"`
}

// MonthlySeries holds per-month income and expense sums. Months are sorted
// ascending by YYYY-MM label and the Income/Expense arrays are index-aligned
// with Months.
type MonthlySeries struct {
	Months  []string `json:"months"`
	Income  []int64  `json:"income"`
	Expense []int64  `json:"expense"`
}

// BudgetStatus describes how far spending has progressed against one budget.
type BudgetStatus struct {
	BudgetID   string  `json:"budget_id"`
	Month      string  `json:"month"`
	CategoryID *string `json:"category_id,omitempty"`
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	UsedPct    float64 `json:"used_pct"`
	IsWarning  bool    `json:"is_warning"`
	IsOver     bool    `json:"is_over"`
}

// Dashboard bundles everything the presentation layer needs for one request.
type Dashboard struct {
	Month             string           `json:"month"`
	Summary           Summary          `json:"summary"`
	MonthlySeries     MonthlySeries    `json:"monthly_series"`
	CategoryBreakdown map[string]int64 `json:"category_breakdown"`
	BudgetStatuses    []BudgetStatus   `json:"budget_statuses"`
	Alerts            []string         `json:"alerts"`
}

// BuildDashboard computes the full dashboard. The filtered set drives the
// summary, series, and breakdown; budget statuses are always evaluated
// against the complete transaction set for the reference month, regardless
// of the display filter.
func BuildDashboard(
	filtered, all []models.Transaction,
	categories []models.Category,
	budgets []models.Budget,
	refMonth string,
) Dashboard {
	names := categoryNames(categories)
	statuses, alerts := BuildBudgetStatuses(budgets, all, names, refMonth)

	return Dashboard{
		Month:             refMonth,
		Summary:           BuildSummary(filtered),
		MonthlySeries:     BuildMonthlySeries(filtered),
		CategoryBreakdown: BuildCategoryBreakdown(filtered, names),
		BudgetStatuses:    statuses,
		Alerts:            alerts,
	}
}

// BuildSummary totals income and expense over the given transactions.
// NetBalance is always exactly TotalIncome - TotalExpense.
func BuildSummary(transactions []models.Transaction) Summary {
	var s Summary
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			s.TotalExpense += tx.Amount
		}
	}
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}

// BuildMonthlySeries groups transactions by calendar month of their date.
func BuildMonthlySeries(transactions []models.Transaction) MonthlySeries {
	type sums struct{ income, expense int64 }
	byMonth := make(map[string]*sums)

	for _, tx := range transactions {
		label := tx.Date.Format(MonthLayout)
		s, ok := byMonth[label]
		if !ok {
			s = &sums{}
			byMonth[label] = s
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.income += tx.Amount
		case models.TransactionTypeExpense:
			s.expense += tx.Amount
		}
	}

	months := make([]string, 0, len(byMonth))
	for label := range byMonth {
		months = append(months, label)
	}
	// Lexicographic order on YYYY-MM labels is chronological order.
	sort.Strings(months)

	series := MonthlySeries{
		Months:  months,
		Income:  make([]int64, len(months)),
		Expense: make([]int64, len(months)),
	}
	for i, label := range months {
		series.Income[i] = byMonth[label].income
		series.Expense[i] = byMonth[label].expense
	}
	return series
}

// BuildCategoryBreakdown sums expense amounts per category full name. The
// expense check applies to each transaction individually; income
// transactions never contribute.
func BuildCategoryBreakdown(transactions []models.Transaction, names map[string]string) map[string]int64 {
	breakdown := make(map[string]int64)
	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		label := UncategorizedLabel
		if tx.CategoryID != nil {
			if name, ok := names[*tx.CategoryID]; ok {
				label = name
			}
		}
		breakdown[label] += tx.Amount
	}
	return breakdown
}

// BuildBudgetStatuses evaluates every budget for the reference month against
// the full transaction set and returns the statuses together with one alert
// message per budget in warning or over state. Spend is category-scoped: a
// budget without a category reports zero spend.
func BuildBudgetStatuses(
	budgets []models.Budget,
	all []models.Transaction,
	names map[string]string,
	refMonth string,
) ([]BudgetStatus, []string) {
	statuses := make([]BudgetStatus, 0, len(budgets))
	alerts := make([]string, 0)

	for _, b := range budgets {
		if b.Month != refMonth {
			continue
		}

		var spent int64
		if b.CategoryID != nil {
			for _, tx := range all {
				if tx.Type != models.TransactionTypeExpense {
					continue
				}
				if tx.CategoryID == nil || *tx.CategoryID != *b.CategoryID {
					continue
				}
				if tx.Date.Format(MonthLayout) != refMonth {
					continue
				}
				spent += tx.Amount
			}
		}

		var usedPct float64
		if b.Amount > 0 {
			usedPct = float64(spent) / float64(b.Amount) * 100
		}

		warningPct := b.WarningPct
		if warningPct <= 0 {
			warningPct = models.DefaultWarningPct
		}

		label := "Overall"
		if b.CategoryID != nil {
			if name, ok := names[*b.CategoryID]; ok {
				label = name
			}
		}

		status := BudgetStatus{
			BudgetID:   b.ID,
			Month:      b.Month,
			CategoryID: b.CategoryID,
			Category:   label,
			Amount:     b.Amount,
			Spent:      spent,
			Remaining:  b.Amount - spent,
			UsedPct:    usedPct,
			IsOver:     usedPct >= 100,
			IsWarning:  usedPct < 100 && usedPct >= warningPct*100,
		}
		statuses = append(statuses, status)

		switch {
		case status.IsOver:
			alerts = append(alerts, fmt.Sprintf(
				"Budget exceeded for %s in %s: spent %s of %s",
				label, b.Month, money.FormatCents(spent), money.FormatCents(b.Amount)))
		case status.IsWarning:
			alerts = append(alerts, fmt.Sprintf(
				"Budget warning for %s in %s: spent %s of %s (%.0f%%)",
				label, b.Month, money.FormatCents(spent), money.FormatCents(b.Amount), usedPct))
		}
	}

	return statuses, alerts
}

// categoryNames builds an id -> full name index. Full names resolve through
// the id map rather than preloaded associations, so callers only need the
// flat category list.
func categoryNames(categories []models.Category) map[string]string {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		name := c.Name
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				name = parent.Name + " / " + c.Name
			}
		}
		names[c.ID] = name
	}
	return names
}

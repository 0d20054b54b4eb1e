package models

// DefaultWarningPct is the warning threshold applied when a budget is saved
// without one: the budget is flagged once 80% of its amount is spent.
const DefaultWarningPct = 0.8

// Budget represents a monthly spending cap, optionally scoped to a category.
// A nil CategoryID means an overall budget for the month. At most one budget
// exists per (user, month, category); saves are upserts on that key.
type Budget struct {
	Base
	UserID     string  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID *string `gorm:"type:uuid" json:"category_id,omitempty"`
	Month      string  `gorm:"size:7;not null" json:"month"` // YYYY-MM
	Amount     int64   `gorm:"type:bigint;not null" json:"amount"`
	WarningPct float64 `gorm:"default:0.8" json:"warning_pct"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

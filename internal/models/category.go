package models

// Category represents a transaction category. Categories form a tree of at
// most two levels: a category may have a parent, but a parented category may
// not itself become a parent.
type Category struct {
	Base
	UserID   string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string  `gorm:"not null" json:"name"`
	ParentID *string `gorm:"type:uuid" json:"parent_id,omitempty"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// FullName returns the display name of the category, qualified by its parent
// when one is loaded: "Food / Groceries" for a child, "Food" for a top-level
// category.
func (c *Category) FullName() string {
	if c.Parent != nil {
		return c.Parent.Name + " / " + c.Name
	}
	return c.Name
}

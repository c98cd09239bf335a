package models

// Category groups components (resistors, microcontrollers, connectors, ...)
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_categories_name"`
}

// TableName returns the table name for Category
func (Category) TableName() string {
	return "categories"
}

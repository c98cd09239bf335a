package models

import "time"

// Component is one stocked part. Parameters is an open jsonb document of
// electrical/physical characteristics keyed by parameter name.
type Component struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	CategoryID   *int64     `json:"category_id" gorm:"index"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	StorageCell  *string    `json:"storage_cell" gorm:"size:100"`
	DatasheetURL *string    `json:"datasheet_url" gorm:"type:text"`
	Quantity     int        `json:"quantity" gorm:"not null;default:0;check:chk_components_quantity,quantity >= 0"`
	Parameters   JSONB      `json:"parameters" gorm:"type:jsonb;not null;default:'{}'"`
	ImageData    *string    `json:"image_data" gorm:"type:text"`
	Description  *string    `json:"description" gorm:"type:text"`
	UpdatedAt    *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	// Populated only by read paths joining categories
	CategoryName *string `json:"category_name" gorm:"->;-:migration"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the table name for Component
func (Component) TableName() string {
	return "components"
}

// All returns every model the gateway bootstraps, parents first
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Component{},
	}
}

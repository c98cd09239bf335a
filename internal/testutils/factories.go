package testutils

import (
	"fmt"
	"sync/atomic"

	"component-inventory-backend/internal/database/models"
)

var factorySeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&factorySeq, 1)
}

// CategoryFactory provides methods to create test Category data
type CategoryFactory struct{}

// NewCategoryFactory creates a new CategoryFactory
func NewCategoryFactory() *CategoryFactory {
	return &CategoryFactory{}
}

// Create creates a test Category with a unique name
func (f *CategoryFactory) Create() *models.Category {
	return &models.Category{
		Name: fmt.Sprintf("test-category-%d", nextSeq()),
	}
}

// WithName sets a custom name for the category
func (f *CategoryFactory) WithName(name string) *models.Category {
	category := f.Create()
	category.Name = name
	return category
}

// ComponentFactory provides methods to create test Component data
type ComponentFactory struct{}

// NewComponentFactory creates a new ComponentFactory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{}
}

// Create creates a test Component with default values and no category
func (f *ComponentFactory) Create() *models.Component {
	cell := "A1"
	description := "A test component for testing purposes"
	return &models.Component{
		Name:        fmt.Sprintf("test-component-%d", nextSeq()),
		StorageCell: &cell,
		Quantity:    10,
		Parameters:  models.JSONB(`{"package":"0805"}`),
		Description: &description,
	}
}

// WithCategory sets the category for the component
func (f *ComponentFactory) WithCategory(categoryID int64) *models.Component {
	component := f.Create()
	component.CategoryID = &categoryID
	return component
}

// WithName sets a custom name for the component
func (f *ComponentFactory) WithName(name string) *models.Component {
	component := f.Create()
	component.Name = name
	return component
}

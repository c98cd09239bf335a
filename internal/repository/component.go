package repository

import (
	"context"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
)

const selectComponentsSQL = `SELECT c.id, c.category_id, c.name, c.storage_cell, c.datasheet_url, c.quantity,
       c.parameters, c.image_data, c.description, c.updated_at, cat.name AS category_name
FROM components c
LEFT JOIN categories cat ON c.category_id = cat.id`

const (
	listComponentsSQL      = selectComponentsSQL + ` ORDER BY c.name`
	listComponentsByCatSQL = selectComponentsSQL + ` WHERE c.category_id = ? ORDER BY c.name`
	getComponentSQL        = selectComponentsSQL + ` WHERE c.id = ?`
	searchComponentsSQL    = selectComponentsSQL + ` WHERE c.name ILIKE ? OR c.storage_cell ILIKE ? OR cat.name ILIKE ? OR c.description ILIKE ? ORDER BY c.name`
	deleteComponentSQL     = `DELETE FROM components WHERE id = ?`
	insertComponentSQL     = `INSERT INTO components (category_id, name, storage_cell, datasheet_url, quantity, parameters, image_data, description, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW()) RETURNING id`
	updateComponentSQL = `UPDATE components
SET category_id = ?, name = ?, storage_cell = ?, datasheet_url = ?, quantity = ?, parameters = ?, image_data = ?, description = ?, updated_at = NOW()
WHERE id = ?`
)

// ComponentRepository handles database operations for components
type ComponentRepository struct {
	store Store
}

// Ensure ComponentRepository implements ComponentRepositoryInterface
var _ ComponentRepositoryInterface = (*ComponentRepository)(nil)

// NewComponentRepository creates a new component repository
func NewComponentRepository(store Store) *ComponentRepository {
	return &ComponentRepository{store: store}
}

// List retrieves components ordered by name, optionally restricted to one category
func (r *ComponentRepository) List(ctx context.Context, categoryID *int64) ([]models.Component, error) {
	components := []models.Component{}

	var err error
	if categoryID != nil {
		err = r.store.Query(ctx, &components, listComponentsByCatSQL, *categoryID)
	} else {
		err = r.store.Query(ctx, &components, listComponentsSQL)
	}
	if err != nil {
		return nil, err
	}
	return components, nil
}

// GetByID retrieves a single component with its category name
func (r *ComponentRepository) GetByID(ctx context.Context, id int64) (*models.Component, error) {
	var components []models.Component
	if err := r.store.Query(ctx, &components, getComponentSQL, id); err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, apperrors.ErrComponentNotFound
	}
	return &components[0], nil
}

// Search matches pattern (an ILIKE pattern) against name, storage cell, category name
// and description
func (r *ComponentRepository) Search(ctx context.Context, pattern string) ([]models.Component, error) {
	components := []models.Component{}
	if err := r.store.Query(ctx, &components, searchComponentsSQL, pattern, pattern, pattern, pattern); err != nil {
		return nil, err
	}
	return components, nil
}

// Create inserts a component and returns its generated id
func (r *ComponentRepository) Create(ctx context.Context, component *models.Component) (int64, error) {
	return r.store.InsertReturningID(ctx, insertComponentSQL, componentArgs(component)...)
}

// Update replaces every editable field of the component identified by component.ID
func (r *ComponentRepository) Update(ctx context.Context, component *models.Component) (int64, error) {
	args := append(componentArgs(component), component.ID)
	return r.store.Exec(ctx, updateComponentSQL, args...)
}

// Delete removes a component
func (r *ComponentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.store.Exec(ctx, deleteComponentSQL, id)
}

func componentArgs(c *models.Component) []interface{} {
	params := "{}"
	if len(c.Parameters) > 0 {
		params = string(c.Parameters)
	}
	return []interface{}{
		nullableInt(c.CategoryID),
		c.Name,
		nullableString(c.StorageCell),
		nullableString(c.DatasheetURL),
		c.Quantity,
		params,
		nullableString(c.ImageData),
		nullableString(c.Description),
	}
}

// nil pointers must reach the driver as untyped nil
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

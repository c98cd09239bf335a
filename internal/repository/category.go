package repository

import (
	"context"

	"component-inventory-backend/internal/database/models"
)

const (
	selectCategoriesSQL = `SELECT id, name FROM categories ORDER BY name`
	insertCategorySQL   = `INSERT INTO categories (name) VALUES (?) RETURNING id`
	renameCategorySQL   = `UPDATE categories SET name = ? WHERE id = ?`
	deleteCategorySQL   = `DELETE FROM categories WHERE id = ?`
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	store Store
}

// Ensure CategoryRepository implements CategoryRepositoryInterface
var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(store Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// GetAll retrieves every category ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.store.Query(ctx, &categories, selectCategoriesSQL); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a category and returns its generated id
func (r *CategoryRepository) Create(ctx context.Context, name string) (int64, error) {
	return r.store.InsertReturningID(ctx, insertCategorySQL, name)
}

// Rename changes the name of a category
func (r *CategoryRepository) Rename(ctx context.Context, id int64, name string) (int64, error) {
	return r.store.Exec(ctx, renameCategorySQL, name, id)
}

// Delete removes a category. Components referencing it keep existing with no category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.store.Exec(ctx, deleteCategorySQL, id)
}

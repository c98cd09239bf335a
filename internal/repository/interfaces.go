package repository

import (
	"context"

	"component-inventory-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// Store is the statement surface repositories need from the database gateway
type Store interface {
	Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	InsertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error)
}

// CategoryRepositoryInterface defines the interface for category repository operations.
// Write operations return the number of affected rows; zero means the id did not exist.
type CategoryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string) (int64, error)
	Rename(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ComponentRepositoryInterface defines the interface for component repository operations.
// Read operations populate CategoryName from the joined category.
type ComponentRepositoryInterface interface {
	List(ctx context.Context, categoryID *int64) ([]models.Component, error)
	GetByID(ctx context.Context, id int64) (*models.Component, error)
	Search(ctx context.Context, pattern string) ([]models.Component, error)
	Create(ctx context.Context, component *models.Component) (int64, error)
	Update(ctx context.Context, component *models.Component) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

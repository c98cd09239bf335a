package service

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// CategoryServiceInterface defines the interface for category service
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
	RenameCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
}

// ComponentServiceInterface defines the interface for component service
type ComponentServiceInterface interface {
	ListComponents(ctx context.Context, categoryID *int64) ([]ComponentResponse, error)
	GetComponent(ctx context.Context, id int64) (*ComponentResponse, error)
	CreateComponent(ctx context.Context, req *ComponentRequest) (int64, error)
	UpdateComponent(ctx context.Context, req *ComponentRequest) (int64, error)
	DeleteComponent(ctx context.Context, id int64) error
	SearchComponents(ctx context.Context, query string) ([]ComponentResponse, error)
}

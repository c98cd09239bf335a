package service

import "component-inventory-backend/internal/repository"

// Services bundles the category and component services built over one store
type Services struct {
	Categories *CategoryService
	Components *ComponentService
}

// NewServices wires repositories and services over the given store
func NewServices(store repository.Store) *Services {
	v := NewValidator()
	return &Services{
		Categories: NewCategoryService(repository.NewCategoryRepository(store), v),
		Components: NewComponentService(repository.NewComponentRepository(store), v),
	}
}

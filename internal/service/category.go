package service

import (
	"context"
	"fmt"
	"strings"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// CategoryService provides category-related business logic
type CategoryService struct {
	repo      repository.CategoryRepositoryInterface
	validator *validator.Validate
}

// Ensure CategoryService implements CategoryServiceInterface
var _ CategoryServiceInterface = (*CategoryService)(nil)

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo repository.CategoryRepositoryInterface, validator *validator.Validate) *CategoryService {
	return &CategoryService{
		repo:      repo,
		validator: validator,
	}
}

// CategoryResponse represents a single category in bridge responses
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRequest is the validated form of a category name coming from the UI
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ListCategories returns every category ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	responses := make([]CategoryResponse, len(cats))
	for i := range cats {
		responses[i] = s.toResponse(&cats[i])
	}
	return responses, nil
}

// CreateCategory inserts a category under its trimmed name and returns the new id
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (int64, error) {
	req, err := s.validateName(name)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		return 0, categoryStoreError("create category", err)
	}
	return id, nil
}

// RenameCategory changes the name of an existing category
func (s *CategoryService) RenameCategory(ctx context.Context, id int64, name string) error {
	req, err := s.validateName(name)
	if err != nil {
		return err
	}

	affected, err := s.repo.Rename(ctx, id, req.Name)
	if err != nil {
		return categoryStoreError("rename category", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes a category by id
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return categoryStoreError("delete category", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryService) validateName(name string) (*CategoryRequest, error) {
	req := &CategoryRequest{Name: strings.TrimSpace(name)}
	if req.Name == "" {
		return nil, apperrors.ErrEmptyCategoryName
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return req, nil
}

// toResponse converts a Category model to a bridge response
func (s *CategoryService) toResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   cat.ID,
		Name: cat.Name,
	}
}

func categoryStoreError(op string, err error) error {
	switch apperrors.StoreKind(err) {
	case apperrors.KindUniqueViolation:
		return apperrors.ErrCategoryExists
	case apperrors.KindSchemaMismatch:
		return fmt.Errorf("%s: %w", op, apperrors.ErrSchemaMismatch)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

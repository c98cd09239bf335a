package bridge

import (
	"context"
	"errors"

	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/service"
)

// Operation names exposed to the UI
const (
	OpGetCategories    = "getCategories"
	OpAddCategory      = "addCategory"
	OpUpdateCategory   = "updateCategory"
	OpDeleteCategory   = "deleteCategory"
	OpGetComponents    = "getComponents"
	OpGetComponent     = "getComponent"
	OpAddComponent     = "addComponent"
	OpUpdateComponent  = "updateComponent"
	OpDeleteComponent  = "deleteComponent"
	OpSearchComponents = "searchComponents"
)

// Operations lists every operation the bridge serves, in registration order
func Operations() []string {
	return []string{
		OpGetCategories, OpAddCategory, OpUpdateCategory, OpDeleteCategory,
		OpGetComponents, OpGetComponent, OpAddComponent, OpUpdateComponent, OpDeleteComponent,
		OpSearchComponents,
	}
}

type handlerFunc func(ctx context.Context, a args) (interface{}, error)

// operation is one registry entry. fallback is what a caller receives when the
// handler fails unexpectedly, so nothing but envelopes and lists crosses the boundary.
type operation struct {
	name        string
	description string
	params      string
	handle      handlerFunc
	fallback    func() interface{}
}

func listFallback() interface{} { return []interface{}{} }
func nullFallback() interface{} { return nil }
func envelopeFallback(msg string) func() interface{} {
	return func() interface{} { return failed(msg) }
}

func buildOperations(categories service.CategoryServiceInterface, components service.ComponentServiceInterface) []operation {
	return []operation{
		{
			name:        OpGetCategories,
			description: "List all categories ordered by name",
			params:      "no arguments",
			fallback:    listFallback,
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(0); err != nil {
					return nil, err
				}
				cats, err := categories.ListCategories(ctx)
				if err != nil {
					logger.WithContext(ctx).WithError(err).Error("failed to list categories")
					return []service.CategoryResponse{}, nil
				}
				return cats, nil
			},
		},
		{
			name:        OpAddCategory,
			description: "Create a category; returns {success, id?, error?}",
			params:      "[name]",
			fallback:    envelopeFallback("failed to add category"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				name, err := a.text(0)
				if err != nil {
					return nil, err
				}
				id, err := categories.CreateCategory(ctx, name)
				if err != nil {
					logWriteFailure(ctx, OpAddCategory, err)
					return failed(userMessage(err, "failed to add category")), nil
				}
				return okWithID(id), nil
			},
		},
		{
			name:        OpUpdateCategory,
			description: "Rename a category; returns {success, error?}",
			params:      "[id, name]",
			fallback:    envelopeFallback("failed to update category"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(2); err != nil {
					return nil, err
				}
				id, err := a.id(0)
				if err != nil {
					return nil, err
				}
				name, err := a.text(1)
				if err != nil {
					return nil, err
				}
				if err := categories.RenameCategory(ctx, id, name); err != nil {
					if errors.Is(err, apperrors.ErrCategoryNotFound) {
						env := ok()
						msg := err.Error()
						env.Error = &msg
						return env, nil
					}
					logWriteFailure(ctx, OpUpdateCategory, err)
					return failed(userMessage(err, "failed to update category")), nil
				}
				return ok(), nil
			},
		},
		{
			name:        OpDeleteCategory,
			description: "Delete a category; components in it keep existing without a category",
			params:      "[id]",
			fallback:    envelopeFallback("failed to delete category"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				id, err := a.id(0)
				if err != nil {
					return nil, err
				}
				if err := categories.DeleteCategory(ctx, id); err != nil {
					if !apperrors.IsNotFound(err) {
						logWriteFailure(ctx, OpDeleteCategory, err)
					}
					return failed(userMessage(err, "failed to delete category")), nil
				}
				return ok(), nil
			},
		},
		{
			name:        OpGetComponents,
			description: "List components, optionally of one category, ordered by name",
			params:      "[categoryId?]",
			fallback:    listFallback,
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				categoryID, err := a.optionalID(0)
				if err != nil {
					return nil, err
				}
				list, err := components.ListComponents(ctx, categoryID)
				if err != nil {
					logger.WithContext(ctx).WithError(err).Error("failed to list components")
					return []service.ComponentResponse{}, nil
				}
				return list, nil
			},
		},
		{
			name:        OpGetComponent,
			description: "Fetch one component; returns null when it does not exist",
			params:      "[id]",
			fallback:    nullFallback,
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				id, err := a.id(0)
				if err != nil {
					return nil, err
				}
				component, err := components.GetComponent(ctx, id)
				if err != nil {
					if !apperrors.IsNotFound(err) {
						logger.WithContext(ctx).WithError(err).WithField("component_id", id).Error("failed to get component")
					}
					return nil, nil
				}
				return component, nil
			},
		},
		{
			name:        OpAddComponent,
			description: "Create a component; returns {success, id?, error?}",
			params:      "[componentData]",
			fallback:    envelopeFallback("failed to add component"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				req, err := a.component(0)
				if err != nil {
					return nil, err
				}
				id, err := components.CreateComponent(ctx, req)
				if err != nil {
					return failed(userMessage(err, "failed to add component")), nil
				}
				return okWithID(id), nil
			},
		},
		{
			name:        OpUpdateComponent,
			description: "Overwrite a component with a full snapshot; returns {success, changes, error?}",
			params:      "[componentData]",
			fallback:    envelopeFallback("failed to update component"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				req, err := a.component(0)
				if err != nil {
					return nil, err
				}
				changes, err := components.UpdateComponent(ctx, req)
				if err != nil {
					if errors.Is(err, apperrors.ErrComponentNotFound) {
						msg := err.Error()
						return Envelope{Success: true, Changes: &changes, Error: &msg}, nil
					}
					return failed(userMessage(err, "failed to update component")), nil
				}
				return Envelope{Success: true, Changes: &changes}, nil
			},
		},
		{
			name:        OpDeleteComponent,
			description: "Delete a component; returns {success, error?}",
			params:      "[id]",
			fallback:    envelopeFallback("failed to delete component"),
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				id, err := a.id(0)
				if err != nil {
					return nil, err
				}
				if err := components.DeleteComponent(ctx, id); err != nil {
					if !apperrors.IsNotFound(err) {
						logWriteFailure(ctx, OpDeleteComponent, err)
					}
					return failed(userMessage(err, "failed to delete component")), nil
				}
				return ok(), nil
			},
		},
		{
			name:        OpSearchComponents,
			description: "Case-insensitive substring search over name, storage cell, category and description",
			params:      "[query]",
			fallback:    listFallback,
			handle: func(ctx context.Context, a args) (interface{}, error) {
				if err := a.arity(1); err != nil {
					return nil, err
				}
				query, err := a.text(0)
				if err != nil {
					return nil, err
				}
				list, err := components.SearchComponents(ctx, query)
				if err != nil {
					logger.WithContext(ctx).WithError(err).Error("failed to search components")
					return []service.ComponentResponse{}, nil
				}
				return list, nil
			},
		},
	}
}

func logWriteFailure(ctx context.Context, op string, err error) {
	log := logger.WithContext(ctx).WithField("operation", op).WithError(err)
	if apperrors.IsValidation(err) || apperrors.IsAlreadyExists(err) {
		log.Warn("operation rejected")
		return
	}
	log.Error("operation failed")
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ComponentService handles business logic for components
type ComponentService struct {
	repo      repository.ComponentRepositoryInterface
	validator *validator.Validate
}

// Ensure ComponentService implements ComponentServiceInterface
var _ ComponentServiceInterface = (*ComponentService)(nil)

// NewComponentService creates a new component service
func NewComponentService(repo repository.ComponentRepositoryInterface, validator *validator.Validate) *ComponentService {
	return &ComponentService{
		repo:      repo,
		validator: validator,
	}
}

// ComponentRequest carries a full component snapshot as the UI sends it.
// Updates overwrite every mutable field, so callers resend the complete record.
type ComponentRequest struct {
	ID           LooseInt        `json:"id" swaggertype:"integer"`
	CategoryID   LooseInt        `json:"category_id" swaggertype:"integer"`
	Name         string          `json:"name"`
	StorageCell  *string         `json:"storage_cell"`
	DatasheetURL *string         `json:"datasheet_url"`
	Quantity     LooseInt        `json:"quantity" swaggertype:"integer"`
	Parameters   json.RawMessage `json:"parameters" swaggertype:"object"`
	ImageData    *string         `json:"image_data"`
	Description  *string         `json:"description"`
}

// ComponentResponse represents a component in bridge responses
type ComponentResponse struct {
	ID           int64           `json:"id"`
	CategoryID   *int64          `json:"category_id"`
	Name         string          `json:"name"`
	StorageCell  *string         `json:"storage_cell"`
	DatasheetURL *string         `json:"datasheet_url"`
	Quantity     int             `json:"quantity"`
	Parameters   json.RawMessage `json:"parameters" swaggertype:"object"`
	ImageData    *string         `json:"image_data"`
	Description  *string         `json:"description"`
	UpdatedAt    *time.Time      `json:"updated_at"`
	CategoryName *string         `json:"category_name"`
}

// componentFields is the normalised snapshot the validator checks before any write
type componentFields struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=255"`
	StorageCell *string `json:"storage_cell" validate:"omitempty,max=100"`
}

// ListComponents returns all components, or those of one category, ordered by name
func (s *ComponentService) ListComponents(ctx context.Context, categoryID *int64) ([]ComponentResponse, error) {
	components, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get components: %w", err)
	}
	return s.toResponses(components), nil
}

// GetComponent returns a single component with decoded parameters
func (s *ComponentService) GetComponent(ctx context.Context, id int64) (*ComponentResponse, error) {
	component, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrComponentNotFound) {
			return nil, apperrors.ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	resp := s.toResponse(component)
	return &resp, nil
}

// CreateComponent validates and inserts a component, returning its id
func (s *ComponentService) CreateComponent(ctx context.Context, req *ComponentRequest) (int64, error) {
	log := logger.WithContext(ctx)
	logPayload(log, "create component requested", req)

	component, err := s.normalize(req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, component)
	if err != nil {
		logStoreFailure(log, "failed to insert component", err)
		return 0, componentStoreError("create component", err)
	}

	log.WithField("component_id", id).Info("component created")
	return id, nil
}

// UpdateComponent overwrites every mutable field of an existing component and returns
// the number of changed rows. A missing id yields 0 and ErrComponentNotFound.
func (s *ComponentService) UpdateComponent(ctx context.Context, req *ComponentRequest) (int64, error) {
	log := logger.WithContext(ctx)
	logPayload(log, "update component requested", req)

	if req == nil || !req.ID.Positive() {
		return 0, apperrors.ErrComponentIDRequired
	}

	component, err := s.normalize(req)
	if err != nil {
		return 0, err
	}
	component.ID = req.ID.Value

	changes, err := s.repo.Update(ctx, component)
	if err != nil {
		logStoreFailure(log, "failed to update component", err)
		return 0, componentStoreError("update component", err)
	}
	if changes == 0 {
		return 0, apperrors.ErrComponentNotFound
	}
	return changes, nil
}

// DeleteComponent removes a component by id
func (s *ComponentService) DeleteComponent(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return componentStoreError("delete component", err)
	}
	if affected == 0 {
		return apperrors.ErrComponentNotFound
	}
	return nil
}

// SearchComponents matches query case-insensitively against name, storage cell,
// category name and description. A blank query returns nothing without querying.
func (s *ComponentService) SearchComponents(ctx context.Context, query string) ([]ComponentResponse, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []ComponentResponse{}, nil
	}

	components, err := s.repo.Search(ctx, containsPattern(q))
	if err != nil {
		return nil, fmt.Errorf("failed to search components: %w", err)
	}
	return s.toResponses(components), nil
}

// normalize trims, coerces and validates a request into the row to write
func (s *ComponentService) normalize(req *ComponentRequest) (*models.Component, error) {
	if req == nil {
		return nil, apperrors.ErrCategoryAndNameRequired
	}

	name := strings.TrimSpace(req.Name)
	if req.CategoryID.Present && !req.CategoryID.Valid {
		return nil, apperrors.NewValidationError("category_id", "category_id must be a number")
	}
	if !req.CategoryID.Positive() || name == "" {
		return nil, apperrors.ErrCategoryAndNameRequired
	}

	params, err := normalizeParameters(req.Parameters)
	if err != nil {
		return nil, err
	}

	quantity := 0
	if req.Quantity.Valid && req.Quantity.Value > 0 {
		quantity = int(req.Quantity.Value)
	}

	fields := componentFields{
		CategoryID:  req.CategoryID.Value,
		Name:        name,
		StorageCell: trimmedOrNil(req.StorageCell),
	}
	if err := s.validator.Struct(&fields); err != nil {
		return nil, validationError(err)
	}

	categoryID := fields.CategoryID
	return &models.Component{
		CategoryID:   &categoryID,
		Name:         fields.Name,
		StorageCell:  fields.StorageCell,
		DatasheetURL: trimmedOrNil(req.DatasheetURL),
		Quantity:     quantity,
		Parameters:   params,
		ImageData:    trimmedOrNil(req.ImageData),
		Description:  trimmedOrNil(req.Description),
	}, nil
}

func (s *ComponentService) toResponses(components []models.Component) []ComponentResponse {
	responses := make([]ComponentResponse, len(components))
	for i := range components {
		responses[i] = s.toResponse(&components[i])
	}
	return responses
}

// toResponse converts a Component model to a bridge response
func (s *ComponentService) toResponse(c *models.Component) ComponentResponse {
	return ComponentResponse{
		ID:           c.ID,
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		StorageCell:  c.StorageCell,
		DatasheetURL: c.DatasheetURL,
		Quantity:     c.Quantity,
		Parameters:   storedParameters(c.Parameters),
		ImageData:    c.ImageData,
		Description:  c.Description,
		UpdatedAt:    c.UpdatedAt,
		CategoryName: c.CategoryName,
	}
}

func componentStoreError(op string, err error) error {
	switch apperrors.StoreKind(err) {
	case apperrors.KindUniqueViolation:
		return apperrors.ErrComponentExists
	case apperrors.KindForeignKeyViolation:
		return apperrors.ErrCategoryReferenceNotFound
	case apperrors.KindInvalidInputFormat:
		return apperrors.ErrInvalidParametersFormat
	case apperrors.KindSchemaMismatch:
		return fmt.Errorf("%s: %w", op, apperrors.ErrSchemaMismatch)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func logStoreFailure(log *logger.Logger, msg string, err error) {
	fields := map[string]interface{}{}
	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		fields["code"] = storeErr.Code
		fields["kind"] = storeErr.Kind
		fields["detail"] = storeErr.Detail
		fields["constraint"] = storeErr.Constraint
		fields["table"] = storeErr.Table
	}
	log.WithFields(fields).WithError(err).Error(msg)
}

// logPayload dumps the request at debug level with the image payload elided
func logPayload(log *logger.Logger, msg string, req *ComponentRequest) {
	if req == nil || !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	payload := *req
	if payload.ImageData != nil {
		elided := fmt.Sprintf("<%d bytes elided>", len(*payload.ImageData))
		payload.ImageData = &elided
	}
	log.WithField("payload", payload).Debug(msg)
}

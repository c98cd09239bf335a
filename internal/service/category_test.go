package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/mocks"
	"component-inventory-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockCategoryRepo *mocks.MockCategoryRepositoryInterface
	categoryService  *service.CategoryService
	ctx              context.Context
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockCategoryRepo = mocks.NewMockCategoryRepositoryInterface(suite.ctrl)
	suite.categoryService = service.NewCategoryService(suite.mockCategoryRepo, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *CategoryServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *CategoryServiceTestSuite) TestListCategories_Success() {
	cats := []models.Category{
		{ID: 2, Name: "Capacitors"},
		{ID: 1, Name: "Resistors"},
	}
	suite.mockCategoryRepo.EXPECT().GetAll(suite.ctx).Return(cats, nil)

	resp, err := suite.categoryService.ListCategories(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []service.CategoryResponse{
		{ID: 2, Name: "Capacitors"},
		{ID: 1, Name: "Resistors"},
	}, resp)
}

func (suite *CategoryServiceTestSuite) TestListCategories_RepositoryError() {
	suite.mockCategoryRepo.EXPECT().GetAll(suite.ctx).Return(nil, errors.New("connection refused"))

	resp, err := suite.categoryService.ListCategories(suite.ctx)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
	assert.Contains(suite.T(), err.Error(), "failed to get categories")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_TrimsName() {
	suite.mockCategoryRepo.EXPECT().Create(suite.ctx, "Resistors").Return(int64(3), nil)

	id, err := suite.categoryService.CreateCategory(suite.ctx, "  Resistors \t")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), id)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_BlankNameNeverReachesStore() {
	for _, name := range []string{"", "   ", "\n\t"} {
		id, err := suite.categoryService.CreateCategory(suite.ctx, name)

		assert.Zero(suite.T(), id)
		assert.ErrorIs(suite.T(), err, apperrors.ErrEmptyCategoryName)
	}
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_NameTooLong() {
	_, err := suite.categoryService.CreateCategory(suite.ctx, strings.Repeat("x", 256))

	assert.True(suite.T(), apperrors.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "name")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Duplicate() {
	suite.mockCategoryRepo.EXPECT().Create(suite.ctx, "Resistors").
		Return(int64(0), &apperrors.StoreError{Kind: apperrors.KindUniqueViolation, Code: "23505"})

	_, err := suite.categoryService.CreateCategory(suite.ctx, "Resistors ")

	assert.ErrorIs(suite.T(), err, apperrors.ErrCategoryExists)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_UnknownStoreError() {
	cause := &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: "connection reset"}
	suite.mockCategoryRepo.EXPECT().Create(suite.ctx, "Diodes").Return(int64(0), cause)

	_, err := suite.categoryService.CreateCategory(suite.ctx, "Diodes")

	assert.ErrorIs(suite.T(), err, cause)
	assert.False(suite.T(), apperrors.IsAlreadyExists(err))
}

func (suite *CategoryServiceTestSuite) TestRenameCategory_Success() {
	suite.mockCategoryRepo.EXPECT().Rename(suite.ctx, int64(4), "Inductors").Return(int64(1), nil)

	err := suite.categoryService.RenameCategory(suite.ctx, 4, " Inductors ")

	assert.NoError(suite.T(), err)
}

func (suite *CategoryServiceTestSuite) TestRenameCategory_NotFound() {
	suite.mockCategoryRepo.EXPECT().Rename(suite.ctx, int64(40), "Inductors").Return(int64(0), nil)

	err := suite.categoryService.RenameCategory(suite.ctx, 40, "Inductors")

	assert.ErrorIs(suite.T(), err, apperrors.ErrCategoryNotFound)
}

func (suite *CategoryServiceTestSuite) TestRenameCategory_BlankName() {
	err := suite.categoryService.RenameCategory(suite.ctx, 4, "  ")

	assert.ErrorIs(suite.T(), err, apperrors.ErrEmptyCategoryName)
}

func (suite *CategoryServiceTestSuite) TestRenameCategory_SchemaMismatch() {
	suite.mockCategoryRepo.EXPECT().Rename(suite.ctx, int64(4), "Inductors").
		Return(int64(0), &apperrors.StoreError{Kind: apperrors.KindSchemaMismatch, Code: "42703"})

	err := suite.categoryService.RenameCategory(suite.ctx, 4, "Inductors")

	assert.ErrorIs(suite.T(), err, apperrors.ErrSchemaMismatch)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory() {
	suite.mockCategoryRepo.EXPECT().Delete(suite.ctx, int64(5)).Return(int64(1), nil)
	assert.NoError(suite.T(), suite.categoryService.DeleteCategory(suite.ctx, 5))
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_NotFound() {
	suite.mockCategoryRepo.EXPECT().Delete(suite.ctx, int64(99)).Return(int64(0), nil)

	err := suite.categoryService.DeleteCategory(suite.ctx, 99)

	assert.ErrorIs(suite.T(), err, apperrors.ErrCategoryNotFound)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

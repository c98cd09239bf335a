package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/mocks"
	"component-inventory-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ComponentServiceTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockComponentRepo *mocks.MockComponentRepositoryInterface
	componentService  *service.ComponentService
	ctx               context.Context
}

func (suite *ComponentServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockComponentRepo = mocks.NewMockComponentRepositoryInterface(suite.ctrl)
	suite.componentService = service.NewComponentService(suite.mockComponentRepo, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *ComponentServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// decodeRequest builds a request the way the bridge does, from the UI's JSON
func (suite *ComponentServiceTestSuite) decodeRequest(payload string) *service.ComponentRequest {
	var req service.ComponentRequest
	require.NoError(suite.T(), json.Unmarshal([]byte(payload), &req))
	return &req
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_NormalisesInput() {
	req := suite.decodeRequest(`{
		"category_id": "2",
		"name": "  LM7805 ",
		"storage_cell": "  ",
		"datasheet_url": " https://example.com/lm7805.pdf ",
		"quantity": "12",
		"description": "",
		"parameters": {"voltage": "5V"}
	}`)

	suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			suite.Require().NotNil(c.CategoryID)
			suite.Equal(int64(2), *c.CategoryID)
			suite.Equal("LM7805", c.Name)
			suite.Nil(c.StorageCell)
			suite.Equal("https://example.com/lm7805.pdf", *c.DatasheetURL)
			suite.Equal(12, c.Quantity)
			suite.Nil(c.Description)
			suite.Nil(c.ImageData)
			suite.JSONEq(`{"voltage":"5V"}`, string(c.Parameters))
			return 21, nil
		})

	id, err := suite.componentService.CreateComponent(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(21), id)
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_NegativeQuantityClampedToZero() {
	req := suite.decodeRequest(`{"category_id": 1, "name": "NE555", "quantity": -5}`)

	suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			suite.Equal(0, c.Quantity)
			suite.Equal(`{}`, string(c.Parameters))
			return 1, nil
		})

	_, err := suite.componentService.CreateComponent(suite.ctx, req)
	assert.NoError(suite.T(), err)
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_UnparsableQuantityIsZero() {
	req := suite.decodeRequest(`{"category_id": 1, "name": "NE555", "quantity": "lots"}`)

	suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			suite.Equal(0, c.Quantity)
			return 1, nil
		})

	_, err := suite.componentService.CreateComponent(suite.ctx, req)
	assert.NoError(suite.T(), err)
}

// The mock has no expectations, so any repository call fails the test.
func (suite *ComponentServiceTestSuite) TestCreateComponent_ValidationSkipsStore() {
	testCases := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"missing category", `{"name": "NE555"}`, apperrors.ErrCategoryAndNameRequired},
		{"null category", `{"category_id": null, "name": "NE555"}`, apperrors.ErrCategoryAndNameRequired},
		{"zero category", `{"category_id": 0, "name": "NE555"}`, apperrors.ErrCategoryAndNameRequired},
		{"blank name", `{"category_id": 1, "name": "   "}`, apperrors.ErrCategoryAndNameRequired},
		{"array parameters", `{"category_id": 1, "name": "NE555", "parameters": [1, 2]}`, apperrors.ErrInvalidParametersFormat},
		{"scalar parameters", `{"category_id": 1, "name": "NE555", "parameters": 5}`, apperrors.ErrInvalidParametersFormat},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			id, err := suite.componentService.CreateComponent(suite.ctx, suite.decodeRequest(tc.payload))
			assert.Zero(t, id)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_NonNumericCategory() {
	_, err := suite.componentService.CreateComponent(suite.ctx, suite.decodeRequest(`{"category_id": "abc", "name": "NE555"}`))

	assert.True(suite.T(), apperrors.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "category_id must be a number")
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_ParametersEncodedAsString() {
	req := suite.decodeRequest(`{"category_id": 1, "name": "NE555", "parameters": "{\"package\":\"DIP-8\"}"}`)

	suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			suite.JSONEq(`{"package":"DIP-8"}`, string(c.Parameters))
			return 1, nil
		})

	_, err := suite.componentService.CreateComponent(suite.ctx, req)
	assert.NoError(suite.T(), err)
}

func (suite *ComponentServiceTestSuite) TestCreateComponent_StoreErrorMapping() {
	testCases := []struct {
		kind    apperrors.StoreErrorKind
		wantErr error
	}{
		{apperrors.KindUniqueViolation, apperrors.ErrComponentExists},
		{apperrors.KindForeignKeyViolation, apperrors.ErrCategoryReferenceNotFound},
		{apperrors.KindInvalidInputFormat, apperrors.ErrInvalidParametersFormat},
		{apperrors.KindSchemaMismatch, apperrors.ErrSchemaMismatch},
	}

	for _, tc := range testCases {
		suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
			Return(int64(0), &apperrors.StoreError{Kind: tc.kind, Code: "xxxxx", Constraint: "c", Table: "components"})

		_, err := suite.componentService.CreateComponent(suite.ctx, suite.decodeRequest(`{"category_id": 9, "name": "NE555"}`))
		assert.ErrorIs(suite.T(), err, tc.wantErr, string(tc.kind))
	}
}

func (suite *ComponentServiceTestSuite) TestGetComponent_ParametersRoundTrip() {
	var written models.JSONB
	suite.mockComponentRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			written = c.Parameters
			return 8, nil
		})

	id, err := suite.componentService.CreateComponent(suite.ctx, suite.decodeRequest(
		`{"category_id": 1, "name": "TL072", "parameters": {"voltage":"5V","package":"SOIC-8"}}`))
	suite.Require().NoError(err)

	suite.mockComponentRepo.EXPECT().GetByID(suite.ctx, id).
		Return(&models.Component{ID: id, CategoryID: int64Ptr(1), Name: "TL072", Parameters: written, CategoryName: strPtr("Op-amps")}, nil)

	got, err := suite.componentService.GetComponent(suite.ctx, id)

	suite.Require().NoError(err)
	var params map[string]string
	suite.Require().NoError(json.Unmarshal(got.Parameters, &params))
	assert.Equal(suite.T(), map[string]string{"voltage": "5V", "package": "SOIC-8"}, params)
	assert.Equal(suite.T(), "Op-amps", *got.CategoryName)
}

func (suite *ComponentServiceTestSuite) TestGetComponent_MalformedStoredParameters() {
	testCases := map[string]models.JSONB{
		"encoded object": models.JSONB(`"{\"a\":1}"`),
		"array":          models.JSONB(`[1,2]`),
		"garbage string": models.JSONB(`"not json"`),
		"empty":          nil,
	}
	want := map[string]string{
		"encoded object": `{"a":1}`,
		"array":          `{}`,
		"garbage string": `{}`,
		"empty":          `{}`,
	}

	for name, stored := range testCases {
		suite.mockComponentRepo.EXPECT().GetByID(suite.ctx, int64(1)).
			Return(&models.Component{ID: 1, Name: "x", Parameters: stored}, nil)

		got, err := suite.componentService.GetComponent(suite.ctx, 1)
		suite.Require().NoError(err)
		assert.JSONEq(suite.T(), want[name], string(got.Parameters), name)
	}
}

func (suite *ComponentServiceTestSuite) TestGetComponent_NotFound() {
	suite.mockComponentRepo.EXPECT().GetByID(suite.ctx, int64(404)).Return(nil, apperrors.ErrComponentNotFound)

	got, err := suite.componentService.GetComponent(suite.ctx, 404)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, apperrors.ErrComponentNotFound)
}

func (suite *ComponentServiceTestSuite) TestListComponents_ByCategory() {
	suite.mockComponentRepo.EXPECT().List(suite.ctx, int64Ptr(3)).
		Return([]models.Component{{ID: 1, Name: "100nF", Parameters: models.JSONB(`{}`)}}, nil)

	resp, err := suite.componentService.ListComponents(suite.ctx, int64Ptr(3))

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp, 1)
}

func (suite *ComponentServiceTestSuite) TestListComponents_Error() {
	suite.mockComponentRepo.EXPECT().List(suite.ctx, nil).Return(nil, errors.New("boom"))

	resp, err := suite.componentService.ListComponents(suite.ctx, nil)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
}

func (suite *ComponentServiceTestSuite) TestUpdateComponent_Success() {
	req := suite.decodeRequest(`{"id": 6, "category_id": 2, "name": "LM317", "quantity": 3}`)

	suite.mockComponentRepo.EXPECT().Update(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Component) (int64, error) {
			suite.Equal(int64(6), c.ID)
			suite.Equal("LM317", c.Name)
			suite.Equal(3, c.Quantity)
			return 1, nil
		})

	changes, err := suite.componentService.UpdateComponent(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), changes)
}

func (suite *ComponentServiceTestSuite) TestUpdateComponent_NotFound() {
	suite.mockComponentRepo.EXPECT().Update(suite.ctx, gomock.Any()).Return(int64(0), nil)

	changes, err := suite.componentService.UpdateComponent(suite.ctx,
		suite.decodeRequest(`{"id": 600, "category_id": 2, "name": "LM317"}`))

	assert.Zero(suite.T(), changes)
	assert.ErrorIs(suite.T(), err, apperrors.ErrComponentNotFound)
}

func (suite *ComponentServiceTestSuite) TestUpdateComponent_RequiresID() {
	changes, err := suite.componentService.UpdateComponent(suite.ctx,
		suite.decodeRequest(`{"category_id": 2, "name": "LM317"}`))

	assert.Zero(suite.T(), changes)
	assert.ErrorIs(suite.T(), err, apperrors.ErrComponentIDRequired)
}

func (suite *ComponentServiceTestSuite) TestDeleteComponent() {
	suite.mockComponentRepo.EXPECT().Delete(suite.ctx, int64(6)).Return(int64(1), nil)
	assert.NoError(suite.T(), suite.componentService.DeleteComponent(suite.ctx, 6))

	suite.mockComponentRepo.EXPECT().Delete(suite.ctx, int64(7)).Return(int64(0), nil)
	assert.ErrorIs(suite.T(), suite.componentService.DeleteComponent(suite.ctx, 7), apperrors.ErrComponentNotFound)
}

func (suite *ComponentServiceTestSuite) TestSearchComponents_BlankQuerySkipsStore() {
	for _, q := range []string{"", "   ", "\t"} {
		resp, err := suite.componentService.SearchComponents(suite.ctx, q)

		assert.NoError(suite.T(), err)
		assert.NotNil(suite.T(), resp)
		assert.Empty(suite.T(), resp)
	}
}

func (suite *ComponentServiceTestSuite) TestSearchComponents_BuildsSubstringPattern() {
	suite.mockComponentRepo.EXPECT().Search(suite.ctx, "%abc%").
		Return([]models.Component{{ID: 1, Name: "ABC123"}}, nil)

	resp, err := suite.componentService.SearchComponents(suite.ctx, "  abc ")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp, 1)
}

func (suite *ComponentServiceTestSuite) TestSearchComponents_EscapesWildcards() {
	suite.mockComponentRepo.EXPECT().Search(suite.ctx, `%10\%\_x%`).Return([]models.Component{}, nil)

	_, err := suite.componentService.SearchComponents(suite.ctx, "10%_x")

	assert.NoError(suite.T(), err)
}

func TestComponentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ComponentServiceTestSuite))
}

func TestLooseInt_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		in      string
		present bool
		valid   bool
		value   int64
	}{
		{`12`, true, true, 12},
		{`"12"`, true, true, 12},
		{`" 7 "`, true, true, 7},
		{`3.9`, true, true, 3},
		{`-5`, true, true, -5},
		{`null`, false, false, 0},
		{`""`, false, false, 0},
		{`"abc"`, true, false, 0},
		{`true`, true, false, 0},
	}

	for _, tc := range testCases {
		var n service.LooseInt
		require.NoError(t, json.Unmarshal([]byte(tc.in), &n), tc.in)
		assert.Equal(t, tc.present, n.Present, tc.in)
		assert.Equal(t, tc.valid, n.Valid, tc.in)
		assert.Equal(t, tc.value, n.Value, tc.in)
	}
}

package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"component-inventory-backend/internal/bridge"
	apperrors "component-inventory-backend/internal/errors"
	"component-inventory-backend/internal/mocks"
	"component-inventory-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockCategory  *mocks.MockCategoryServiceInterface
	mockComponent *mocks.MockComponentServiceInterface
	dispatcher    *bridge.Dispatcher
	ctx           context.Context
}

func (suite *DispatcherTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockCategory = mocks.NewMockCategoryServiceInterface(suite.ctrl)
	suite.mockComponent = mocks.NewMockComponentServiceInterface(suite.ctrl)
	suite.dispatcher = bridge.NewDispatcher(time.Second)
	suite.Require().NoError(suite.dispatcher.Register(suite.mockCategory, suite.mockComponent))
	suite.ctx = context.Background()
}

func (suite *DispatcherTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// invoke calls an operation with JSON-literal arguments and returns the JSON result
func (suite *DispatcherTestSuite) invoke(op string, jsonArgs ...string) string {
	raw := make([]json.RawMessage, len(jsonArgs))
	for i, a := range jsonArgs {
		raw[i] = json.RawMessage(a)
	}
	result, err := suite.dispatcher.Invoke(suite.ctx, op, raw)
	suite.Require().NoError(err)
	out, err := json.Marshal(result)
	suite.Require().NoError(err)
	return string(out)
}

func (suite *DispatcherTestSuite) invokeErr(op string, jsonArgs ...string) error {
	raw := make([]json.RawMessage, len(jsonArgs))
	for i, a := range jsonArgs {
		raw[i] = json.RawMessage(a)
	}
	_, err := suite.dispatcher.Invoke(suite.ctx, op, raw)
	return err
}

func (suite *DispatcherTestSuite) TestRegistrationIsComplete() {
	assert.True(suite.T(), suite.dispatcher.Ready())
	assert.Empty(suite.T(), suite.dispatcher.Verify())
	assert.ElementsMatch(suite.T(), bridge.Operations(), suite.dispatcher.Registered())
	assert.Error(suite.T(), suite.dispatcher.Register(suite.mockCategory, suite.mockComponent))
}

func (suite *DispatcherTestSuite) TestUnknownOperation() {
	err := suite.invokeErr("dropDatabase")
	assert.ErrorIs(suite.T(), err, bridge.ErrUnknownOperation)
}

func (suite *DispatcherTestSuite) TestGetCategories() {
	suite.mockCategory.EXPECT().ListCategories(gomock.Any()).
		Return([]service.CategoryResponse{{ID: 1, Name: "Resistors"}}, nil)

	assert.JSONEq(suite.T(), `[{"id":1,"name":"Resistors"}]`, suite.invoke(bridge.OpGetCategories))
}

func (suite *DispatcherTestSuite) TestGetCategories_FailureIsEmptyList() {
	suite.mockCategory.EXPECT().ListCategories(gomock.Any()).Return(nil, errors.New("connection refused"))

	assert.JSONEq(suite.T(), `[]`, suite.invoke(bridge.OpGetCategories))
}

func (suite *DispatcherTestSuite) TestAddCategory() {
	suite.mockCategory.EXPECT().CreateCategory(gomock.Any(), " Diodes ").Return(int64(4), nil)

	assert.JSONEq(suite.T(), `{"success":true,"id":4}`, suite.invoke(bridge.OpAddCategory, `" Diodes "`))
}

func (suite *DispatcherTestSuite) TestAddCategory_ErrorMessages() {
	suite.mockCategory.EXPECT().CreateCategory(gomock.Any(), "Diodes").Return(int64(0), apperrors.ErrCategoryExists)
	assert.JSONEq(suite.T(), `{"success":false,"error":"category with this name already exists"}`,
		suite.invoke(bridge.OpAddCategory, `"Diodes"`))

	suite.mockCategory.EXPECT().CreateCategory(gomock.Any(), "").Return(int64(0), apperrors.ErrEmptyCategoryName)
	assert.JSONEq(suite.T(), `{"success":false,"error":"category name must not be empty"}`,
		suite.invoke(bridge.OpAddCategory, `null`))

	suite.mockCategory.EXPECT().CreateCategory(gomock.Any(), "Diodes").
		Return(int64(0), &apperrors.StoreError{Kind: apperrors.KindUnknown, Message: "pq: connection reset"})
	assert.JSONEq(suite.T(), `{"success":false,"error":"failed to add category"}`,
		suite.invoke(bridge.OpAddCategory, `"Diodes"`))
}

func (suite *DispatcherTestSuite) TestAddCategory_RejectsNonStringName() {
	err := suite.invokeErr(bridge.OpAddCategory, `42`)
	assert.True(suite.T(), bridge.IsArgumentError(err))
}

func (suite *DispatcherTestSuite) TestUpdateCategory_NotFoundIsSuccessShaped() {
	suite.mockCategory.EXPECT().RenameCategory(gomock.Any(), int64(9), "Fuses").Return(apperrors.ErrCategoryNotFound)

	assert.JSONEq(suite.T(), `{"success":true,"error":"category not found"}`,
		suite.invoke(bridge.OpUpdateCategory, `9`, `"Fuses"`))
}

func (suite *DispatcherTestSuite) TestDeleteCategory() {
	suite.mockCategory.EXPECT().DeleteCategory(gomock.Any(), int64(2)).Return(nil)
	assert.JSONEq(suite.T(), `{"success":true}`, suite.invoke(bridge.OpDeleteCategory, `2`))

	suite.mockCategory.EXPECT().DeleteCategory(gomock.Any(), int64(3)).Return(apperrors.ErrCategoryNotFound)
	assert.JSONEq(suite.T(), `{"success":false,"error":"category not found"}`, suite.invoke(bridge.OpDeleteCategory, `"3"`))
}

func (suite *DispatcherTestSuite) TestIDArgumentSchema() {
	testCases := []string{`"abc"`, `true`, `{}`, `null`}
	for _, arg := range testCases {
		err := suite.invokeErr(bridge.OpDeleteCategory, arg)
		assert.True(suite.T(), bridge.IsArgumentError(err), arg)
	}

	err := suite.invokeErr(bridge.OpDeleteCategory)
	assert.True(suite.T(), bridge.IsArgumentError(err))

	err = suite.invokeErr(bridge.OpDeleteCategory, `1`, `2`)
	assert.True(suite.T(), bridge.IsArgumentError(err))
}

func (suite *DispatcherTestSuite) TestGetComponents_OptionalCategory() {
	suite.mockComponent.EXPECT().ListComponents(gomock.Any(), nil).Return([]service.ComponentResponse{}, nil).Times(4)
	for _, args := range [][]string{{}, {`null`}, {`0`}, {`""`}} {
		assert.JSONEq(suite.T(), `[]`, suite.invoke(bridge.OpGetComponents, args...))
	}

	id := int64(3)
	suite.mockComponent.EXPECT().ListComponents(gomock.Any(), &id).
		Return([]service.ComponentResponse{{ID: 7, Name: "100nF", Parameters: json.RawMessage(`{}`)}}, nil)
	out := suite.invoke(bridge.OpGetComponents, `"3"`)
	assert.Contains(suite.T(), out, `"name":"100nF"`)
}

func (suite *DispatcherTestSuite) TestGetComponents_FailureIsEmptyList() {
	suite.mockComponent.EXPECT().ListComponents(gomock.Any(), nil).Return(nil, errors.New("timeout"))

	assert.JSONEq(suite.T(), `[]`, suite.invoke(bridge.OpGetComponents))
}

func (suite *DispatcherTestSuite) TestGetComponent() {
	suite.mockComponent.EXPECT().GetComponent(gomock.Any(), int64(5)).
		Return(&service.ComponentResponse{ID: 5, Name: "BC547", Parameters: json.RawMessage(`{"type":"NPN"}`)}, nil)
	out := suite.invoke(bridge.OpGetComponent, `5`)
	assert.Contains(suite.T(), out, `"parameters":{"type":"NPN"}`)

	suite.mockComponent.EXPECT().GetComponent(gomock.Any(), int64(6)).Return(nil, apperrors.ErrComponentNotFound)
	assert.Equal(suite.T(), `null`, suite.invoke(bridge.OpGetComponent, `6`))
}

func (suite *DispatcherTestSuite) TestAddComponent() {
	suite.mockComponent.EXPECT().CreateComponent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *service.ComponentRequest) (int64, error) {
			suite.Equal("NE555", req.Name)
			suite.Equal(int64(2), req.CategoryID.Value)
			return 12, nil
		})

	assert.JSONEq(suite.T(), `{"success":true,"id":12}`,
		suite.invoke(bridge.OpAddComponent, `{"category_id":"2","name":"NE555","quantity":"4"}`))
}

func (suite *DispatcherTestSuite) TestAddComponent_ErrorMessages() {
	testCases := []struct {
		err  error
		want string
	}{
		{apperrors.ErrCategoryAndNameRequired, "category and component name are required"},
		{apperrors.ErrCategoryReferenceNotFound, "the specified category does not exist"},
		{apperrors.ErrComponentExists, "component with this name already exists"},
		{apperrors.ErrInvalidParametersFormat, "invalid data format (check component parameters)"},
		{apperrors.ErrSchemaMismatch, "database structure error: a column or table is missing"},
		{errors.New("driver exploded"), "failed to add component"},
	}

	for _, tc := range testCases {
		suite.mockComponent.EXPECT().CreateComponent(gomock.Any(), gomock.Any()).Return(int64(0), tc.err)

		out := suite.invoke(bridge.OpAddComponent, `{"name":"x"}`)
		var env bridge.Envelope
		suite.Require().NoError(json.Unmarshal([]byte(out), &env))
		assert.False(suite.T(), env.Success)
		suite.Require().NotNil(env.Error)
		assert.Equal(suite.T(), tc.want, *env.Error)
	}
}

func (suite *DispatcherTestSuite) TestAddComponent_RequiresObject() {
	for _, arg := range []string{`null`, `"NE555"`, `[1]`} {
		err := suite.invokeErr(bridge.OpAddComponent, arg)
		assert.True(suite.T(), bridge.IsArgumentError(err), arg)
	}
}

func (suite *DispatcherTestSuite) TestUpdateComponent() {
	suite.mockComponent.EXPECT().UpdateComponent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	assert.JSONEq(suite.T(), `{"success":true,"changes":1}`,
		suite.invoke(bridge.OpUpdateComponent, `{"id":1,"category_id":1,"name":"NE555"}`))

	suite.mockComponent.EXPECT().UpdateComponent(gomock.Any(), gomock.Any()).Return(int64(0), apperrors.ErrComponentNotFound)
	assert.JSONEq(suite.T(), `{"success":true,"changes":0,"error":"component not found"}`,
		suite.invoke(bridge.OpUpdateComponent, `{"id":99,"category_id":1,"name":"NE555"}`))

	suite.mockComponent.EXPECT().UpdateComponent(gomock.Any(), gomock.Any()).Return(int64(0), apperrors.ErrComponentIDRequired)
	assert.JSONEq(suite.T(), `{"success":false,"error":"component id is required for update"}`,
		suite.invoke(bridge.OpUpdateComponent, `{"category_id":1,"name":"NE555"}`))
}

func (suite *DispatcherTestSuite) TestDeleteComponent_NotFound() {
	suite.mockComponent.EXPECT().DeleteComponent(gomock.Any(), int64(8)).Return(apperrors.ErrComponentNotFound)

	assert.JSONEq(suite.T(), `{"success":false,"error":"component not found"}`, suite.invoke(bridge.OpDeleteComponent, `8`))
}

func (suite *DispatcherTestSuite) TestSearchComponents() {
	suite.mockComponent.EXPECT().SearchComponents(gomock.Any(), "").Return([]service.ComponentResponse{}, nil)
	assert.JSONEq(suite.T(), `[]`, suite.invoke(bridge.OpSearchComponents, `null`))

	suite.mockComponent.EXPECT().SearchComponents(gomock.Any(), "abc").Return(nil, errors.New("boom"))
	assert.JSONEq(suite.T(), `[]`, suite.invoke(bridge.OpSearchComponents, `"abc"`))
}

func (suite *DispatcherTestSuite) TestPanicBecomesFallbackEnvelope() {
	suite.mockCategory.EXPECT().CreateCategory(gomock.Any(), "x").DoAndReturn(
		func(context.Context, string) (int64, error) { panic("nil map write") })

	assert.JSONEq(suite.T(), `{"success":false,"error":"failed to add category"}`, suite.invoke(bridge.OpAddCategory, `"x"`))
}

func (suite *DispatcherTestSuite) TestInvocationCarriesDeadline() {
	suite.mockCategory.EXPECT().ListCategories(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]service.CategoryResponse, error) {
			_, ok := ctx.Deadline()
			suite.True(ok)
			return []service.CategoryResponse{}, nil
		})

	suite.invoke(bridge.OpGetCategories)
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func TestDispatcher_NotReadyFailsFast(t *testing.T) {
	d := bridge.NewDispatcher(0)

	result, err := d.Invoke(context.Background(), bridge.OpGetCategories, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, bridge.ErrNotReady)
	assert.False(t, d.Ready())
	require.Len(t, d.Verify(), len(bridge.Operations()))
}

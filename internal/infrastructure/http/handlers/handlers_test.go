package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alchemorsel/kitchen/internal/application/catalog"
	"github.com/alchemorsel/kitchen/internal/application/pantry"
	"github.com/alchemorsel/kitchen/internal/application/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/kitchen/internal/infrastructure/security"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/testutils"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type mockImportService struct {
	mock.Mock
}

func (m *mockImportService) ImportFromURL(ctx context.Context, cmd inbound.ImportCommand) (*inbound.ImportResult, error) {
	args := m.Called(ctx, cmd)
	if result := args.Get(0); result != nil {
		return result.(*inbound.ImportResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type HandlersTestSuite struct {
	suite.Suite
	importer *mockImportService
	catalog  *testutils.InMemoryCatalogRepository
	router   http.Handler
	userID   uuid.UUID
}

func (suite *HandlersTestSuite) SetupTest() {
	logger := zap.NewNop()
	events := &testutils.MockEventDispatcher{}
	events.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	suite.userID = uuid.New()
	suite.importer = &mockImportService{}
	suite.catalog = testutils.NewInMemoryCatalogRepository(
		testutils.NewMasterRecipe("Spaghetti Carbonara", "italian", "pasta"),
	)

	recipeService := recipe.NewRecipeService(testutils.NewInMemoryRecipeRepository(), measurement.NewNormalizer(), events, logger)
	pantryService := pantry.NewPantryService(testutils.NewInMemoryPantryRepository(), pantry.Config{}, logger)
	catalogService := catalog.NewCatalogService(suite.catalog, nil, recipeService, catalog.Config{}, logger)

	h := NewHandlers(suite.importer, recipeService, pantryService, catalogService, logger)

	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Test-Anonymous") != "" {
				next.ServeHTTP(w, r)
				return
			}
			principal := &security.Principal{UserID: suite.userID}
			next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), principal)))
		})
	}
	passThrough := func(next http.Handler) http.Handler { return next }

	suite.router = h.Routes(authenticate, passThrough)
}

func (suite *HandlersTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlersTestSuite) decode(rec *httptest.ResponseRecorder, dst interface{}) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (suite *HandlersTestSuite) errorMessage(rec *httptest.ResponseRecorder) string {
	var body errors.ErrorResponse
	suite.decode(rec, &body)
	return body.Error
}

func (suite *HandlersTestSuite) createRecipe(name string) inbound.RecipeDTO {
	draft := testutils.NewDraftBuilder().WithName(name).Build()
	rec := suite.do(http.MethodPost, "/recipes", draft)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var dto inbound.RecipeDTO
	suite.decode(rec, &dto)
	return dto
}

func (suite *HandlersTestSuite) TestImportReturnsDraft() {
	// Arrange
	result := &inbound.ImportResult{
		RecipeDraft:       testutils.NewDraftBuilder().WithName("Imported Cake").Build(),
		ConversionSummary: measurement.ConversionSummary{Total: 2, Converted: 1},
	}
	suite.importer.On("ImportFromURL", mock.Anything, inbound.ImportCommand{
		UserID: suite.userID,
		URL:    "https://example.com/cake",
	}).Return(result, nil)

	// Act
	rec := suite.do(http.MethodPost, "/recipes/import", map[string]string{"url": "https://example.com/cake"})

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	var got inbound.ImportResult
	suite.decode(rec, &got)
	suite.Equal("Imported Cake", got.Name)
	suite.Equal(1, got.ConversionSummary.Converted)
	suite.importer.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestImportMapsServiceErrors() {
	// Arrange
	suite.importer.On("ImportFromURL", mock.Anything, mock.Anything).
		Return(nil, errors.NewInvalidInputError("URL must use http or https"))

	// Act
	rec := suite.do(http.MethodPost, "/recipes/import", map[string]string{"url": "ftp://example.com"})

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "http or https")
}

func (suite *HandlersTestSuite) TestMalformedAndMissingBodies() {
	rec := suite.do(http.MethodPost, "/recipes/import", "{not json")
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "Malformed JSON body")

	rec = suite.do(http.MethodPost, "/recipes", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Request body is required", suite.errorMessage(rec))
}

func (suite *HandlersTestSuite) TestCreateRecipeValidation() {
	// Arrange
	draft := testutils.NewDraftBuilder().WithName("ab").Build()
	draft.Instructions = nil

	// Act
	rec := suite.do(http.MethodPost, "/recipes", draft)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	msg := suite.errorMessage(rec)
	suite.Contains(msg, "name must be at least 3")
	suite.Contains(msg, "instructions is required")
}

func (suite *HandlersTestSuite) TestRecipeLifecycle() {
	// Arrange
	created := suite.createRecipe("Lemon Tart")
	path := "/recipes/" + created.ID.String()

	// Act & Assert: read
	rec := suite.do(http.MethodGet, path, nil)
	suite.Equal(http.StatusOK, rec.Code)

	// update
	rec = suite.do(http.MethodPut, path, map[string]interface{}{"name": "Lime Tart", "servings": 6})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated inbound.RecipeDTO
	suite.decode(rec, &updated)
	suite.Equal("Lime Tart", updated.Name)
	suite.Equal(6, updated.Servings)

	// favorite
	rec = suite.do(http.MethodPut, path+"/favorite", map[string]bool{"favorite": true})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var fav inbound.RecipeDTO
	suite.decode(rec, &fav)
	suite.True(fav.Favorite)

	// list favorites
	rec = suite.do(http.MethodGet, "/recipes?favorites=true", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var list inbound.RecipeList
	suite.decode(rec, &list)
	suite.Equal(1, list.Total)

	// delete
	rec = suite.do(http.MethodDelete, path, nil)
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodGet, path, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlersTestSuite) TestFavoriteRequiresFlag() {
	created := suite.createRecipe("Plain Bread")

	rec := suite.do(http.MethodPut, "/recipes/"+created.ID.String()+"/favorite", map[string]string{})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "favorite is required")
}

func (suite *HandlersTestSuite) TestInvalidPathAndQuery() {
	rec := suite.do(http.MethodGet, "/recipes/not-a-uuid", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "id must be a valid UUID")

	rec = suite.do(http.MethodGet, "/recipes?page=two", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/recipes?favorites=maybe", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestUnauthenticatedRequestIsRejected() {
	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("X-Test-Anonymous", "1")
	rec := httptest.NewRecorder()

	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *HandlersTestSuite) TestPantryFlow() {
	// Arrange
	rec := suite.do(http.MethodPost, "/pantry", map[string]string{
		"name":      "Milk",
		"quantity":  "2",
		"unit":      "l",
		"location":  "fridge",
		"expiresAt": "2000-01-01",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var item inbound.PantryItemDTO
	suite.decode(rec, &item)

	// Act & Assert: expired items are listed as expiring
	rec = suite.do(http.MethodGet, "/pantry/expiring?days=3", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var expiring struct {
		Items []inbound.PantryItemDTO `json:"items"`
	}
	suite.decode(rec, &expiring)
	suite.Len(expiring.Items, 1)

	// consume part
	rec = suite.do(http.MethodPost, "/pantry/"+item.ID.String()+"/consume", map[string]float64{"amount": 0.5})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var consumed inbound.PantryItemDTO
	suite.decode(rec, &consumed)
	suite.Equal("1.5", consumed.Quantity)

	// clear expiry
	rec = suite.do(http.MethodPut, "/pantry/"+item.ID.String(), map[string]bool{"clearExpiry": true})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var cleared inbound.PantryItemDTO
	suite.decode(rec, &cleared)
	suite.Nil(cleared.ExpiresAt)

	// remove
	rec = suite.do(http.MethodDelete, "/pantry/"+item.ID.String(), nil)
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodGet, "/pantry", nil)
	var all struct {
		Items []inbound.PantryItemDTO `json:"items"`
	}
	suite.decode(rec, &all)
	suite.Empty(all.Items)
}

func (suite *HandlersTestSuite) TestPantryRejectsBadInput() {
	rec := suite.do(http.MethodPost, "/pantry", map[string]string{"name": "Ice", "location": "garage"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "location must be one of")

	rec = suite.do(http.MethodPost, "/pantry", map[string]string{"name": "Ice", "expiresAt": "soon"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "expiresAt")

	rec = suite.do(http.MethodGet, "/pantry/expiring?days=-1", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestCatalogBrowseAndSave() {
	// Act: browse without authentication
	req := httptest.NewRequest(http.MethodGet, "/catalog?cuisine=italian", nil)
	req.Header.Set("X-Test-Anonymous", "1")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	// Assert
	suite.Require().Equal(http.StatusOK, rec.Code)
	var page inbound.CatalogPage
	suite.decode(rec, &page)
	suite.Require().Len(page.Recipes, 1)
	entryID := page.Recipes[0].ID

	rec = suite.do(http.MethodGet, "/catalog/"+entryID.String(), nil)
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodPost, "/catalog/"+entryID.String()+"/save", nil)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var saved inbound.RecipeDTO
	suite.decode(rec, &saved)
	suite.Equal("Spaghetti Carbonara", saved.Name)
	suite.Require().NotNil(saved.MasterRecipeID)
	suite.Equal(entryID, *saved.MasterRecipeID)
	suite.Equal("/api/v1/recipes/"+saved.ID.String(), rec.Header().Get("Location"))

	rec = suite.do(http.MethodGet, "/catalog/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

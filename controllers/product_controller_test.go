package controllers_test

import (
	"catalog/app"
	"catalog/models"
	"catalog/routes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type productBody struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	CategoryID any          `json:"categoryId"`
	Brand      string       `json:"brand"`
	Price      float64      `json:"price"`
	Stock      float64      `json:"stock"`
	Specs      models.Specs `json:"specs"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := app.NewMemoryDependencies(zerolog.New(io.Discard))
	return &testServer{t: t, handler: app.SetupHttpHandler(deps, routes.AuthOptions{})}
}

func (s *testServer) do(method, path, body string) (int, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func (s *testServer) createCategory(name string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/categories", `{"name": "`+name+`"}`)
	require.Equal(s.t, http.StatusCreated, code)
	var category struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &category))
	return category.ID
}

func (s *testServer) createProduct(body string) productBody {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/products", body)
	require.Equal(s.t, http.StatusCreated, code, env.Message)
	var product productBody
	require.NoError(s.t, json.Unmarshal(env.Data, &product))
	return product
}

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t)
	categoryID := s.createCategory("Laptops")

	t.Run("201 with defaults", func(t *testing.T) {
		// when
		code, env := s.do(http.MethodPost, "/api/products",
			`{"name": "Laptop X", "categoryId": "`+categoryID+`", "price": 999.99, "stock": 10}`)
		// then
		require.Equal(t, http.StatusCreated, code)
		assert.True(t, env.Success)

		var product productBody
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Laptop X", product.Name)
		assert.Equal(t, categoryID, product.CategoryID)
		assert.Equal(t, "", product.Brand)
		assert.Equal(t, 999.99, product.Price)
		assert.Equal(t, 10.0, product.Stock)
		assert.Equal(t, models.Specs{}, product.Specs)
	})

	testCases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: models.MsgNameAndCategoryRequired},
		{name: "empty object", body: `{}`, wantMsg: models.MsgNameAndCategoryRequired},
		{name: "malformed json", body: `{"name":`, wantMsg: "Invalid request body"},
		{name: "malformed categoryId", body: `{"name": "A", "categoryId": "xyz", "price": 1}`, wantMsg: models.MsgInvalidCategoryID},
		{name: "negative price", body: `{"name": "A", "categoryId": "` + categoryID + `", "price": -1}`, wantMsg: models.MsgInvalidPrice},
		{name: "string price", body: `{"name": "A", "categoryId": "` + categoryID + `", "price": "1"}`, wantMsg: models.MsgInvalidPrice},
		{name: "negative stock", body: `{"name": "A", "categoryId": "` + categoryID + `", "price": 1, "stock": -2}`, wantMsg: models.MsgInvalidStock},
		{name: "missing stock", body: `{"name": "A", "categoryId": "` + categoryID + `", "price": 1}`, wantMsg: models.MsgInvalidStock},
		{name: "blank name before categoryId", body: `{"name": "  ", "categoryId": "xyz", "price": 1, "stock": 1}`, wantMsg: models.MsgNameAndCategoryRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := s.do(http.MethodPost, "/api/products", tc.body)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantMsg, env.Message)
		})
	}

	t.Run("fractional stock", func(t *testing.T) {
		product := s.createProduct(`{"name": "Cable", "categoryId": "` + categoryID + `", "price": 4, "stock": 2.5}`)
		assert.Equal(t, 2.5, product.Stock)
	})

	t.Run("rejected creates are not stored", func(t *testing.T) {
		code, env := s.do(http.MethodGet, "/api/products", "")
		require.Equal(t, http.StatusOK, code)
		var products []productBody
		require.NoError(t, json.Unmarshal(env.Data, &products))
		assert.Len(t, products, 2)
	})
}

func TestGetProducts(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))

	categoryID := s.createCategory("Laptops")
	s.createProduct(`{"name": "older", "categoryId": "` + categoryID + `", "price": 1, "stock": 1}`)
	s.createProduct(`{"name": "newer", "categoryId": "` + categoryID + `", "price": 2, "stock": 1}`)

	code, env = s.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, code)

	var products []productBody
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "newer", products[0].Name)
	assert.Equal(t, "older", products[1].Name)
	assert.Equal(t, map[string]any{"id": categoryID, "name": "Laptops"}, products[0].CategoryID)
}

func TestGetProductByID(t *testing.T) {
	s := newTestServer(t)
	categoryID := s.createCategory("Laptops")
	created := s.createProduct(`{"name": "Laptop X", "categoryId": "` + categoryID + `", "price": 5, "stock": 1}`)

	code, env := s.do(http.MethodGet, "/api/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, code)
	var product productBody
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, created.ID, product.ID)
	assert.Equal(t, map[string]any{"id": categoryID, "name": "Laptops"}, product.CategoryID)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		code, env = s.do(http.MethodGet, "/api/products/"+id, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, env.Success)
		assert.Equal(t, models.MsgProductNotFound, env.Message)
	}
}

func TestUpdateProduct(t *testing.T) {
	s := newTestServer(t)
	categoryID := s.createCategory("Laptops")
	created := s.createProduct(`{"name": "Laptop X", "categoryId": "` + categoryID + `", "price": 999.99, "stock": 10}`)

	t.Run("partial update", func(t *testing.T) {
		code, env := s.do(http.MethodPatch, "/api/products/"+created.ID, `{"price": 899}`)

		require.Equal(t, http.StatusOK, code)
		var product productBody
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.Equal(t, 899.0, product.Price)
		assert.Equal(t, 10.0, product.Stock)
		assert.Equal(t, categoryID, product.CategoryID)
	})

	t.Run("put behaves like patch", func(t *testing.T) {
		code, env := s.do(http.MethodPut, "/api/products/"+created.ID, `{"stock": 3}`)

		require.Equal(t, http.StatusOK, code)
		var product productBody
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.Equal(t, 899.0, product.Price)
		assert.Equal(t, 3.0, product.Stock)
	})

	t.Run("negative stock", func(t *testing.T) {
		code, env := s.do(http.MethodPatch, "/api/products/"+created.ID, `{"stock": -1}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, models.MsgStockBelowZero, env.Message)
	})

	t.Run("negative price", func(t *testing.T) {
		code, env := s.do(http.MethodPatch, "/api/products/"+created.ID, `{"price": -1}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, models.MsgInvalidPrice, env.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		code, env := s.do(http.MethodPatch, "/api/products/"+primitive.NewObjectID().Hex(), `{"price": 1}`)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, models.MsgProductNotFound, env.Message)
	})

	t.Run("unchanged after rejected update", func(t *testing.T) {
		_, env := s.do(http.MethodGet, "/api/products/"+created.ID, "")
		var product productBody
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.Equal(t, 899.0, product.Price)
		assert.Equal(t, 3.0, product.Stock)
	})
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)
	categoryID := s.createCategory("Laptops")
	created := s.createProduct(`{"name": "Laptop X", "categoryId": "` + categoryID + `", "price": 1, "stock": 1}`)

	code, env := s.do(http.MethodDelete, "/api/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, models.MsgProductDeleted, env.Message)

	code, env = s.do(http.MethodGet, "/api/products/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, models.MsgProductNotFound, env.Message)

	code, env = s.do(http.MethodDelete, "/api/products/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, models.MsgProductNotFound, env.Message)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/categories", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, models.MsgCategoryNameRequired, env.Message)

	s.createCategory("Phones")
	s.createCategory("Audio")

	code, env = s.do(http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Audio", categories[0].Name)
	assert.Equal(t, "Phones", categories[1].Name)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestResponsesCarryRequestID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

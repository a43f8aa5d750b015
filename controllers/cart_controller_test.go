package controllers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mock := newMockDB(t)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", "jane@example.com")
	})
	r.GET("/api/cart", GetCart)
	r.POST("/api/cart/add", AddCartItem)
	return r, mock
}

func expectEmptyCartLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT items, updated_at FROM carts WHERE email = ?")).
		WithArgs("jane@example.com").
		WillReturnError(sql.ErrNoRows)
}

func TestAddCartItemDefaultsQuantity(t *testing.T) {
	r, mock := setupCartRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, price FROM catalog_items WHERE name = ?")).
		WithArgs("Croissant").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Croissant", 3.5))
	expectEmptyCartLoad(mock)
	mock.ExpectExec("INSERT INTO carts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	// quantity omitted entirely
	w := postJSON(r, "/api/cart/add", `{"name":"Croissant"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCartItemExplicitQuantity(t *testing.T) {
	r, mock := setupCartRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, price FROM catalog_items WHERE name = ?")).
		WithArgs("Croissant").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Croissant", 3.5))
	expectEmptyCartLoad(mock)
	mock.ExpectExec("INSERT INTO carts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postJSON(r, "/api/cart/add", `{"name":"Croissant","quantity":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":4`)
}

func TestAddCartItemRejectsNonPositiveQuantity(t *testing.T) {
	r, _ := setupCartRouter(t)

	// rejected before any store access
	for _, body := range []string{
		`{"name":"Croissant","quantity":0}`,
		`{"name":"Croissant","quantity":-2}`,
	} {
		w := postJSON(r, "/api/cart/add", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestAddCartItemUnknownCatalogItem(t *testing.T) {
	r, mock := setupCartRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, price FROM catalog_items WHERE name = ?")).
		WithArgs("Unicorn Tart").
		WillReturnError(sql.ErrNoRows)

	w := postJSON(r, "/api/cart/add", `{"name":"Unicorn Tart"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartEmptyWhenMissing(t *testing.T) {
	r, mock := setupCartRouter(t)

	expectEmptyCartLoad(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

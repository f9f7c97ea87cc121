package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/craftedge/storefront/internal/models"
)

func TestGetProduct(t *testing.T) {
	db := initTestDB(t)
	h := &ProductHandler{DB: db}
	p := seedProduct(t, db, "p1", "Widget", 10)
	require.NoError(t, db.Create(&models.Comment{
		ProductID: p.ID, UserID: 1, UserName: "A", Comment: "nice", Rating: 5,
	}).Error)

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodGet, "/api/products/p1", nil)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Product  models.Product   `json:"product"`
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Widget", resp.Product.Title)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, "nice", resp.Comments[0].Comment)
}

func TestGetProductNotFound(t *testing.T) {
	db := initTestDB(t)
	h := &ProductHandler{DB: db}

	e := echo.New()
	c, _ := jsonContext(t, e, http.MethodGet, "/api/products/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	he := requireHTTPError(t, h.GetProduct(c), http.StatusNotFound)
	require.Equal(t, "Product not found", he.Message)
}

func TestGetProductsPagination(t *testing.T) {
	db := initTestDB(t)
	h := &ProductHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)
	seedProduct(t, db, "p2", "Gadget", 5)
	seedProduct(t, db, "p3", "Gizmo", 7)

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodGet, "/api/products?page=1&size=2", nil)

	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total   int64 `json:"total"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, int64(3), resp.Meta.Total)
	require.True(t, resp.Meta.HasNext)
}

func TestAddComment(t *testing.T) {
	db := initTestDB(t)
	h := &CommentHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodPost, "/api/products/p1/comments", map[string]any{
		"userName": "A",
		"userId":   1,
		"comment":  "great product",
		"rating":   4,
	})
	c.SetParamNames("id")
	c.SetParamValues("p1")

	require.NoError(t, h.AddComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Comment added successfully", resp.Message)
	require.Equal(t, "great product", resp.Comment.Comment)
	require.NotZero(t, resp.Comment.ID)
}

func TestAddCommentMissingFields(t *testing.T) {
	db := initTestDB(t)
	h := &CommentHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)

	e := echo.New()
	c, _ := jsonContext(t, e, http.MethodPost, "/api/products/p1/comments", map[string]any{
		"userName": "A",
		"userId":   1,
	})
	c.SetParamNames("id")
	c.SetParamValues("p1")

	he := requireHTTPError(t, h.AddComment(c), http.StatusBadRequest)
	require.Equal(t, "Missing required fields", he.Message)
}

func TestAddCommentUnknownProduct(t *testing.T) {
	db := initTestDB(t)
	h := &CommentHandler{DB: db}

	e := echo.New()
	c, _ := jsonContext(t, e, http.MethodPost, "/api/products/missing/comments", map[string]any{
		"userName": "A",
		"userId":   1,
		"comment":  "great",
	})
	c.SetParamNames("id")
	c.SetParamValues("missing")

	requireHTTPError(t, h.AddComment(c), http.StatusNotFound)
}

func TestGetComments(t *testing.T) {
	db := initTestDB(t)
	h := &CommentHandler{DB: db}
	p := seedProduct(t, db, "p1", "Widget", 10)
	for _, text := range []string{"first", "second"} {
		require.NoError(t, db.Create(&models.Comment{
			ProductID: p.ID, UserID: 1, UserName: "A", Comment: text,
		}).Error)
	}

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodGet, "/api/products/p1/comments", nil)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	require.NoError(t, h.GetComments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 2)
}

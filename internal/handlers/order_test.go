package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/models"
)

func seedProduct(t *testing.T, db *gorm.DB, productID, title string, price float64) *models.Product {
	t.Helper()

	p := &models.Product{
		ProductID: productID,
		Title:     title,
		Price:     price,
		Image:     "https://img.example/" + productID + ".jpg",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func orderPayload() map[string]any {
	return map[string]any{
		"email": "A@B.com",
		"products": []map[string]any{
			{"productId": "p1", "quantity": 2},
			{"productId": "p2", "quantity": 1},
		},
		"shippingDetails": map[string]string{
			"firstName": "A",
			"lastName":  "B",
			"address":   "1 Rd",
			"apartment": "",
			"city":      "X",
			"state":     "Y",
			"pincode":   "400001",
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	db := initTestDB(t)
	h := &OrderHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)
	seedProduct(t, db, "p2", "Gadget", 5)

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodPost, "/api/place-order", orderPayload())

	require.NoError(t, h.PlaceOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string `json:"message"`
		OrderID uint   `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Order placed successfully", resp.Message)
	require.NotZero(t, resp.OrderID)

	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Equal(t, "a@b.com", order.Email)
	require.Equal(t, models.OrderStatusPending, order.Status)

	// Lines resolve price/title from the catalog, total is their sum.
	require.Len(t, order.Products, 2)
	require.Equal(t, "Widget", order.Products[0].Title)
	require.Equal(t, uint(2), order.Products[0].Quantity)
	require.Equal(t, float64(25), order.TotalAmount)

	require.Equal(t, "A", order.ShippingDetails.FirstName)
	require.Equal(t, "400001", order.ShippingDetails.Pincode)
}

func TestPlaceOrderDefaultsQuantity(t *testing.T) {
	db := initTestDB(t)
	h := &OrderHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)

	payload := orderPayload()
	payload["products"] = []map[string]any{{"productId": "p1", "quantity": 0}}

	e := echo.New()
	c, rec := jsonContext(t, e, http.MethodPost, "/api/place-order", payload)

	require.NoError(t, h.PlaceOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, db.Order("id DESC").First(&order).Error)
	require.Equal(t, uint(1), order.Products[0].Quantity)
	require.Equal(t, float64(10), order.TotalAmount)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := initTestDB(t)
	h := &OrderHandler{DB: db}
	seedProduct(t, db, "p1", "Widget", 10)

	payload := orderPayload()
	payload["products"] = []map[string]any{{"productId": "missing", "quantity": 1}}

	e := echo.New()
	c, _ := jsonContext(t, e, http.MethodPost, "/api/place-order", payload)

	he := requireHTTPError(t, h.PlaceOrder(c), http.StatusNotFound)
	require.Equal(t, "Product not found", he.Message)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count, "failed placement must not leave a partial order")
}

func TestPlaceOrderMissingFields(t *testing.T) {
	db := initTestDB(t)
	h := &OrderHandler{DB: db}

	e := echo.New()

	payload := orderPayload()
	payload["email"] = ""
	c, _ := jsonContext(t, e, http.MethodPost, "/api/place-order", payload)
	requireHTTPError(t, h.PlaceOrder(c), http.StatusBadRequest)

	payload = orderPayload()
	payload["products"] = []map[string]any{}
	c, _ = jsonContext(t, e, http.MethodPost, "/api/place-order", payload)
	requireHTTPError(t, h.PlaceOrder(c), http.StatusBadRequest)

	payload = orderPayload()
	payload["shippingDetails"] = map[string]string{"firstName": "A"}
	c, _ = jsonContext(t, e, http.MethodPost, "/api/place-order", payload)
	requireHTTPError(t, h.PlaceOrder(c), http.StatusBadRequest)
}

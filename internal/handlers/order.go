package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/logging"
	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/mykafka"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// PlaceOrder creates an order at checkout. The caller sends catalog ids and
// quantities only; titles, prices and images are resolved from the product
// table so the stored lines and total reflect placement time. The shipping
// block is snapshotted as sent and never follows later profile edits.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "place_order")

	var req struct {
		Email    string `json:"email"`
		Products []struct {
			ProductID string `json:"productId"`
			Quantity  uint   `json:"quantity"`
		} `json:"products"`
		ShippingDetails models.ShippingDetails `json:"shippingDetails"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("order_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sd := req.ShippingDetails
	if req.Email == "" || len(req.Products) == 0 ||
		sd.FirstName == "" || sd.LastName == "" || sd.Address == "" ||
		sd.City == "" || sd.State == "" || sd.Pincode == "" {
		l.Warn("order_failed", "status", 400, "reason", "missing_fields")
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}

	var order models.Order
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		lines := make([]models.OrderProduct, 0, len(req.Products))
		var total float64
		for _, item := range req.Products {
			var p models.Product
			if err := tx.Where("product_id = ?", item.ProductID).First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Product not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
			}

			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			lines = append(lines, models.OrderProduct{
				ProductID: p.ProductID,
				Title:     p.Title,
				Quantity:  qty,
				Price:     p.Price,
				Image:     p.Image,
			})
			total += float64(qty) * p.Price
		}

		order = models.Order{
			Email:           normalizeEmail(req.Email),
			Products:        lines,
			TotalAmount:     total,
			ShippingDetails: sd,
			Status:          models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		return nil
	})

	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			if he.Code >= 500 {
				l.Error("order_failed", "status", he.Code, "error", txErr)
			} else {
				l.Warn("order_failed", "status", he.Code)
			}
			return he
		}
		l.Error("order_failed", "status", 500, "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"email":   order.Email,
		"total":   order.TotalAmount,
	})

	l.Info("order_placed", "orderID", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

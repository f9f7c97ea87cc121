package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/token"
)

// summaryLimit caps how many orders a summary carries, newest first.
const summaryLimit = 50

type SummaryHandler struct {
	DB     *gorm.DB
	Tokens *token.Service
}

type orderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	TotalSpent      float64 `json:"totalSpent"`
}

type summaryShipping struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

type summaryOrder struct {
	ID              uint                  `json:"id"`
	Email           string                `json:"email"`
	Products        []models.OrderProduct `json:"products"`
	TotalAmount     float64               `json:"totalAmount"`
	ShippingDetails summaryShipping       `json:"shippingDetails"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type summaryUser struct {
	userResponse
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary joins the caller's profile with their recent orders and
// per-status aggregates. Recomputed on every request, never cached.
func (h *SummaryHandler) UserSummary(c echo.Context) error {
	claims, err := authenticate(c, h.Tokens)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	// Orders reference users by email value, not by id.
	var orders []models.Order
	if err := h.DB.Where("email = ?", user.Email).
		Order("created_at DESC").
		Limit(summaryLimit).
		Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	stats := orderStats{TotalOrders: len(orders)}
	formatted := make([]summaryOrder, 0, len(orders))
	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusShipped:
			stats.ShippedOrders++
		case models.OrderStatusDelivered:
			stats.DeliveredOrders++
		case models.OrderStatusCancelled:
			stats.CancelledOrders++
		}
		if order.Status != models.OrderStatusCancelled {
			stats.TotalSpent += order.TotalAmount
		}

		sd := order.ShippingDetails
		formatted = append(formatted, summaryOrder{
			ID:          order.ID,
			Email:       order.Email,
			Products:    order.Products,
			TotalAmount: order.TotalAmount,
			ShippingDetails: summaryShipping{
				FirstName: sd.FirstName,
				LastName:  sd.LastName,
				FullName:  sd.FirstName + " " + sd.LastName,
				Address:   sd.Address,
				Apartment: sd.Apartment,
				City:      sd.City,
				State:     sd.State,
				Pincode:   sd.Pincode,
			},
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": summaryUser{
			userResponse: sanitizeUser(&user),
			FullName:     user.FirstName + " " + user.LastName,
			CreatedAt:    user.CreatedAt,
			UpdatedAt:    user.UpdatedAt,
		},
		"orderStats": stats,
		"orders":     formatted,
	})
}

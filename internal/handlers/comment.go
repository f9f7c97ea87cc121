package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/models"
)

type CommentHandler struct {
	DB *gorm.DB
}

func (h *CommentHandler) findProduct(c echo.Context) (*models.Product, error) {
	var product models.Product
	if err := h.DB.Where("product_id = ?", c.Param("id")).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return &product, nil
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	var req struct {
		UserName string `json:"userName"`
		UserID   uint   `json:"userId"`
		Comment  string `json:"comment"`
		Rating   int    `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.UserName == "" || req.UserID == 0 || req.Comment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	comment := models.Comment{
		ProductID: product.ID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Comment:   req.Comment,
		Rating:    req.Rating,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	var comments []models.Comment
	if err := h.DB.Where("product_id = ?", product.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

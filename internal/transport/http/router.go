package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/handlers"
)

type Deps struct {
	DB             *gorm.DB
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	SummaryHandler *handlers.SummaryHandler
	ProductHandler *handlers.ProductHandler
	CommentHandler *handlers.CommentHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/signup", d.AuthHandler.Signup)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.Logout)

	api.GET("/profile", d.ProfileHandler.GetProfile)
	api.PUT("/profile", d.ProfileHandler.UpdateProfile)
	api.GET("/user-summary", d.SummaryHandler.UserSummary)

	api.POST("/place-order", d.OrderHandler.PlaceOrder)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/products/:id/comments", d.CommentHandler.GetComments)
	api.POST("/products/:id/comments", d.CommentHandler.AddComment)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}
}

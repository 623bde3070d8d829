package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nichebazar/marketplace/internal/handlers"
	"github.com/nichebazar/marketplace/internal/service/token"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *handlers.AuthHandler
	ProfileHandler  *handlers.ProfileHandler
	BusinessHandler *handlers.BusinessHandler
	ProductHandler  *handlers.ProductHandler
	UploadHandler   *handlers.UploadHandler
	ContactHandler  *handlers.ContactHandler
	SearchHandler   *handlers.SearchHandler
	TokenService    *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/auth/signup", d.AuthHandler.Signup)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/logout", d.AuthHandler.Logout)

	api.POST("/profiles", d.ProfileHandler.Upsert)

	api.GET("/businesses", d.BusinessHandler.List)
	api.POST("/businesses", d.BusinessHandler.Submit)
	api.PATCH("/businesses/:id", d.BusinessHandler.Moderate, d.TokenService.AdminOnlyMiddleware)
	api.DELETE("/businesses/:id", d.BusinessHandler.Delete)

	api.GET("/products", d.ProductHandler.ListByBusiness)
	api.POST("/products", d.ProductHandler.Create, d.TokenService.AutoRefreshMiddleware)

	api.POST("/upload", d.UploadHandler.Upload, d.TokenService.AutoRefreshMiddleware)
	api.POST("/contact", d.ContactHandler.Relay)
	api.GET("/search", d.SearchHandler.Search)
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"warehouse/internal/config"
	"warehouse/internal/handler"
	authmw "warehouse/internal/middleware"
	"warehouse/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authenticator authmw.Authenticator,
	productHandler *handler.ProductHandler,
	authHandler *handler.AuthHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, authmw.HeaderAPIKey},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/status", handler.Status)

	apiKey := authmw.APIKey(cfg.APIKey)
	token := authmw.JWT(authenticator)

	// Product routes
	products := api.Group("/productos")
	products.GET("", productHandler.List, apiKey)
	products.GET("/", productHandler.List, apiKey)
	products.GET("/:id", productHandler.Get, apiKey)
	products.POST("", productHandler.Create, token, authmw.RequireRole(model.WriterRoles))
	products.POST("/", productHandler.Create, token, authmw.RequireRole(model.WriterRoles))
	products.PUT("/:id", productHandler.Update, token, authmw.RequireRole(model.WriterRoles))
	products.DELETE("/:id", productHandler.Delete, token, authmw.RequireRole(model.AdminRoles))

	// User routes
	users := api.Group("/usuarios")
	users.POST("/auth/login", authHandler.Login, apiKey)
	users.POST("/auth/logout", authHandler.Logout, token)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

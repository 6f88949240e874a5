package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ideahub/internal/auth"
	"ideahub/internal/config"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/handler"
	"ideahub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ideaHandler *handler.IdeaHandler,
	roomHandler *handler.RoomHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/ideas", ideaHandler.ListIdeas)
	api.GET("/rooms", roomHandler.ListRooms)

	// Secured routes (require a valid access token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))
	secured.POST("/ideas", ideaHandler.CreateIdea)
	secured.DELETE("/ideas/:id", ideaHandler.DeleteIdea)
	secured.PUT("/users/:email", userHandler.UpdateUser)

	// Admin routes
	admin := secured.Group("", requireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.DELETE("/users/:email", userHandler.DeleteUser)
	admin.POST("/rooms", roomHandler.CreateRoom)
	admin.PUT("/rooms/:id", roomHandler.RenameRoom)
	admin.DELETE("/rooms/:id", roomHandler.DeleteRoom)
}

// requireAdmin rejects requests whose access token does not carry the admin
// role. It assumes the JWT middleware already ran.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "unauthorized"})
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{Error: "forbidden"})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

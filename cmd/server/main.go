package main

import (
	"log"
	"net/http"

	_ "ideahub/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ideahub/internal/auth"
	"ideahub/internal/cache"
	"ideahub/internal/config"
	"ideahub/internal/db"
	"ideahub/internal/handler"
	"ideahub/internal/model"
	"ideahub/internal/repository"
	"ideahub/internal/router"
	"ideahub/internal/service"
)

// @title IdeaHub API
// @version 1.0
// @description Idea board and chat room roster API with JWT authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Idea{},
		&model.Room{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)
	ideaService := service.NewIdeaService(ideaRepo, cacheClient)
	roomService := service.NewRoomService(roomRepo, cacheClient)

	router.Register(
		e,
		cfg,
		handler.NewAuthHandler(authService, jwtService),
		handler.NewUserHandler(userService),
		handler.NewIdeaHandler(ideaService),
		handler.NewRoomHandler(roomService),
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

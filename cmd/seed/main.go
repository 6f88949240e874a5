package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"ideahub/internal/auth"
	"ideahub/internal/cache"
	"ideahub/internal/config"
	"ideahub/internal/db"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
	"ideahub/internal/service"
)

// Seeds an admin account plus a little demo content so a fresh install has
// something to show. Safe to re-run: existing emails are skipped and demo
// content is only created when the tables are empty.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Idea{}, &model.Room{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cacheClient)
	ideaService := service.NewIdeaService(ideaRepo, cacheClient)
	roomService := service.NewRoomService(roomRepo, cacheClient)

	ctx := context.Background()

	adminEmail := getenv("SEED_ADMIN_EMAIL", "admin@ideahub.local")
	adminPass := getenv("SEED_ADMIN_PASSWORD", "admin123")

	seedUser(ctx, authService, "Admin", adminEmail, adminPass, model.RoleAdmin)
	seedUser(ctx, authService, "Alice", "alice@ideahub.local", "alice123", model.RoleUser)
	seedUser(ctx, authService, "Bob", "bob@ideahub.local", "bob12345", model.RoleUser)

	ideas, err := ideaService.ListIdeas(ctx)
	if err != nil {
		log.Fatalf("list ideas: %v", err)
	}
	if len(ideas) == 0 {
		for _, content := range []string{
			"Weekly demo Fridays: everyone shows one thing they shipped.",
			"Swap the meeting room whiteboard for a bigger one.",
		} {
			if _, err := ideaService.CreateIdea(ctx, content, "Admin"); err != nil {
				log.Fatalf("seed idea: %v", err)
			}
		}
		log.Println("seeded demo ideas")
	}

	rooms, err := roomService.ListRooms(ctx)
	if err != nil {
		log.Fatalf("list rooms: %v", err)
	}
	if len(rooms) == 0 {
		for _, name := range []string{"General", "Random"} {
			if _, err := roomService.CreateRoom(ctx, name); err != nil {
				log.Fatalf("seed room: %v", err)
			}
		}
		log.Println("seeded demo rooms")
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, svc service.AuthService, name, email, password, role string) {
	_, err := svc.Register(ctx, name, email, password, role)
	switch {
	case err == nil:
		log.Printf("created %s (%s)", email, role)
	case errors.Is(err, apperrors.ErrEmailExists):
		log.Printf("skipping %s: already exists", email)
	default:
		log.Fatalf("seed user %s: %v", email, err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

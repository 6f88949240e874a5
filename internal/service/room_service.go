package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const (
	roomListCacheKey = "rooms:list"
	roomListCacheTTL = time.Minute
)

// RoomService exposes chat room roster operations.
type RoomService interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, name string) (*model.Room, error)
	RenameRoom(ctx context.Context, id int64, name string) (*model.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type roomService struct {
	repo  repository.RoomRepository
	cache *cache.Client
}

// NewRoomService builds a RoomService with repository and cache.
func NewRoomService(repo repository.RoomRepository, cache *cache.Client) RoomService {
	return &roomService{repo: repo, cache: cache}
}

func (s *roomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	if data, _ := s.cache.Get(ctx, roomListCacheKey); data != nil {
		var cached []model.Room
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rooms); err == nil {
		_ = s.cache.Set(ctx, roomListCacheKey, payload, roomListCacheTTL)
	}
	return rooms, nil
}

func (s *roomService) CreateRoom(ctx context.Context, name string) (*model.Room, error) {
	room := &model.Room{Name: name}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	_ = s.cache.Delete(ctx, roomListCacheKey)
	return room, nil
}

// RenameRoom is kept for API parity with the previous backend; the dashboard
// does not call it.
func (s *roomService) RenameRoom(ctx context.Context, id int64, name string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	room.Name = name
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	_ = s.cache.Delete(ctx, roomListCacheKey)
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrRoomNotFound
	}
	_ = s.cache.Delete(ctx, roomListCacheKey)
	return nil
}

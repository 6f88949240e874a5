package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const (
	ideaListCacheKey = "ideas:list"
	ideaListCacheTTL = 30 * time.Second
)

// IdeaService exposes idea board operations.
type IdeaService interface {
	ListIdeas(ctx context.Context) ([]model.Idea, error)
	CreateIdea(ctx context.Context, content, author string) (*model.Idea, error)
	DeleteIdea(ctx context.Context, id int64, actorName, actorRole string) error
}

type ideaService struct {
	repo  repository.IdeaRepository
	cache *cache.Client
}

// NewIdeaService builds an IdeaService with repository and cache.
func NewIdeaService(repo repository.IdeaRepository, cache *cache.Client) IdeaService {
	return &ideaService{repo: repo, cache: cache}
}

func (s *ideaService) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	if data, _ := s.cache.Get(ctx, ideaListCacheKey); data != nil {
		var cached []model.Idea
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	ideas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ideas); err == nil {
		_ = s.cache.Set(ctx, ideaListCacheKey, payload, ideaListCacheTTL)
	}
	return ideas, nil
}

func (s *ideaService) CreateIdea(ctx context.Context, content, author string) (*model.Idea, error) {
	idea := &model.Idea{
		Content:   content,
		Author:    author,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	_ = s.cache.Delete(ctx, ideaListCacheKey)
	return idea, nil
}

// DeleteIdea removes an idea. Authors are matched by display name, so only
// the author (by current name) or an admin may delete.
func (s *ideaService) DeleteIdea(ctx context.Context, id int64, actorName, actorRole string) error {
	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrIdeaNotFound
	}

	if actorRole != model.RoleAdmin && idea.Author != actorName {
		return apperrors.ErrNotIdeaOwner
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrIdeaNotFound
	}
	_ = s.cache.Delete(ctx, ideaListCacheKey)
	return nil
}

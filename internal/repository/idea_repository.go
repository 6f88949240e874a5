package repository

import (
	"context"

	"gorm.io/gorm"

	"ideahub/internal/model"
)

// IdeaRepository defines persistence operations for ideas.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	FindByID(ctx context.Context, id int64) (*model.Idea, error)
	List(ctx context.Context) ([]model.Idea, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository builds a GORM-backed repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

func (r *ideaRepository) FindByID(ctx context.Context, id int64) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).First(&idea, id).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// List returns ideas newest first.
func (r *ideaRepository) List(ctx context.Context) ([]model.Idea, error) {
	var ideas []model.Idea
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Idea{}, id)
	return res.RowsAffected, res.Error
}

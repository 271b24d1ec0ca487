package repository

import (
	"context"
	"errors"

	"healthconnect/internal/domain/entity"
	domainRepo "healthconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const storyWithCounts = `stories.*,
	(SELECT COUNT(*) FROM story_likes WHERE story_likes.story_id = stories.id) AS like_count,
	(SELECT COUNT(*) FROM story_comments WHERE story_comments.story_id = stories.id) AS comment_count`

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) domainRepo.StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *entity.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *storyRepository) FindAll(ctx context.Context) ([]entity.Story, error) {
	var stories []entity.Story
	err := r.db.WithContext(ctx).Model(&entity.Story{}).
		Select(storyWithCounts).
		Preload("Author").
		Order("stories.created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *storyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error) {
	var story entity.Story
	err := r.db.WithContext(ctx).Model(&entity.Story{}).
		Select(storyWithCounts).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("story_comments.created_at ASC") }).
		Preload("Comments.User").
		Where("stories.id = ?", id).
		First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Story, error) {
	var stories []entity.Story
	err := r.db.WithContext(ctx).Model(&entity.Story{}).
		Select(storyWithCounts).
		Preload("Author").
		Where("stories.author_id = ?", authorID).
		Order("stories.created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

// ToggleLike runs in a transaction so the returned count matches the toggle.
// A concurrent duplicate like is absorbed by ON CONFLICT DO NOTHING.
func (r *storyRepository) ToggleLike(ctx context.Context, storyID, userID uuid.UUID) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("story_id = ? AND user_id = ?", storyID, userID).Delete(&entity.StoryLike{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected == 0 {
			like := &entity.StoryLike{StoryID: storyID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&entity.StoryLike{}).Where("story_id = ?", storyID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *storyRepository) AddComment(ctx context.Context, comment *entity.StoryComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

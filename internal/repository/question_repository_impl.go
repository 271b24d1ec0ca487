package repository

import (
	"context"
	"errors"
	"time"

	"healthconnect/internal/domain/entity"
	domainRepo "healthconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) domainRepo.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Answerer").
		Order("asked_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).Preload("Answerer").Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Answer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, answeredAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Question{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"answer":      answer,
			"answered_by": answeredBy,
			"answered_at": answeredAt,
		})
	return result.RowsAffected, result.Error
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Question{})
	return result.RowsAffected, result.Error
}

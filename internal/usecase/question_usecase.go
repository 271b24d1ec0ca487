package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthconnect/internal/converter"
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
	"healthconnect/internal/domain/repository"
	"healthconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrQuestionForbidden = errors.New("only health professionals can moderate questions")
)

type QuestionUsecase interface {
	Ask(ctx context.Context, actor entity.Actor, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error)
	List(ctx context.Context) (*dto.QuestionListResponse, error)
	Answer(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type questionUsecase struct {
	log          *logrus.Logger
	questionRepo repository.QuestionRepository
	auditService service.AuditService
}

func NewQuestionUsecase(
	log *logrus.Logger,
	questionRepo repository.QuestionRepository,
	auditService service.AuditService,
) QuestionUsecase {
	return &questionUsecase{
		log:          log,
		questionRepo: questionRepo,
		auditService: auditService,
	}
}

func (u *questionUsecase) Ask(ctx context.Context, actor entity.Actor, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error) {
	text := strings.TrimSpace(req.Question)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", ErrInvalidArgument)
	}

	askedBy := actor.ID
	question := &entity.Question{
		AskedBy:  &askedBy,
		Question: text,
	}

	if err := u.questionRepo.Create(ctx, question); err != nil {
		u.log.Warnf("Failed to create question: %+v", err)
		return nil, err
	}

	return converter.QuestionToResponse(question), nil
}

// List returns every question, newest first
func (u *questionUsecase) List(ctx context.Context) (*dto.QuestionListResponse, error) {
	questions, err := u.questionRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find questions: %+v", err)
		return nil, err
	}
	return converter.QuestionsToResponse(questions), nil
}

// Answer sets or replaces the answer of a question
func (u *questionUsecase) Answer(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error) {
	if !actor.IsProfessional() {
		return nil, ErrQuestionForbidden
	}

	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: answer is required", ErrInvalidArgument)
	}

	existing, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find question %s: %+v", id, err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrQuestionNotFound
	}

	rows, err := u.questionRepo.Answer(ctx, id, answer, actor.ID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to answer question %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrQuestionNotFound
	}

	updated, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to reload question %s: %+v", id, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrQuestionNotFound
	}

	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionQuestionAnswer, entity.AuditEntityQuestion, id.String(),
		map[string]string{"answer": existing.Answer},
		map[string]string{"answer": updated.Answer})

	return converter.QuestionToResponse(updated), nil
}

func (u *questionUsecase) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.IsProfessional() {
		return ErrQuestionForbidden
	}

	existing, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find question %s: %+v", id, err)
		return err
	}
	if existing == nil {
		return ErrQuestionNotFound
	}

	rows, err := u.questionRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete question %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrQuestionNotFound
	}

	u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionQuestionDelete, entity.AuditEntityQuestion, id.String(),
		converter.QuestionToResponse(existing))

	return nil
}

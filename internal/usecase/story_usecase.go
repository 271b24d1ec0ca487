package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"healthconnect/internal/converter"
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
	"healthconnect/internal/domain/repository"
	"healthconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrStoryNotFound = errors.New("story not found")

type StoryUsecase interface {
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateStoryRequest) (*dto.StoryResponse, error)
	List(ctx context.Context) (*dto.StoryListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StoryResponse, error)
	ListMine(ctx context.Context, actor entity.Actor) (*dto.StoryListResponse, error)
	ToggleLike(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
}

type storyUsecase struct {
	log          *logrus.Logger
	storyRepo    repository.StoryRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewStoryUsecase(
	log *logrus.Logger,
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) StoryUsecase {
	return &storyUsecase{
		log:          log,
		storyRepo:    storyRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *storyUsecase) Create(ctx context.Context, actor entity.Actor, req *dto.CreateStoryRequest) (*dto.StoryResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > entity.MaxStoryTitle {
		return nil, fmt.Errorf("%w: title is required and at most %d characters", ErrInvalidArgument, entity.MaxStoryTitle)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > entity.MaxStoryContent {
		return nil, fmt.Errorf("%w: content is required and at most %d characters", ErrInvalidArgument, entity.MaxStoryContent)
	}

	category, err := entity.ParseStoryCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	story := &entity.Story{
		AuthorID: actor.ID,
		Title:    title,
		Content:  content,
		Category: category,
	}

	if err := u.storyRepo.Create(ctx, story); err != nil {
		u.log.Warnf("Failed to create story: %+v", err)
		return nil, err
	}

	author, err := u.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to load story author %s: %+v", actor.ID, err)
	}
	story.Author = author

	response := converter.StoryToResponse(story)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionStoryCreate, entity.AuditEntityStory, story.ID.String(), response)

	return response, nil
}

// List returns all stories, newest first
func (u *storyUsecase) List(ctx context.Context) (*dto.StoryListResponse, error) {
	stories, err := u.storyRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find stories: %+v", err)
		return nil, err
	}
	return converter.StoriesToResponse(stories), nil
}

// Get returns a story with its comments, oldest comment first
func (u *storyUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.StoryResponse, error) {
	story, err := u.storyRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find story %s: %+v", id, err)
		return nil, err
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}
	return converter.StoryToResponse(story), nil
}

func (u *storyUsecase) ListMine(ctx context.Context, actor entity.Actor) (*dto.StoryListResponse, error) {
	stories, err := u.storyRepo.FindByAuthor(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find stories of %s: %+v", actor.ID, err)
		return nil, err
	}
	return converter.StoriesToResponse(stories), nil
}

// ToggleLike likes the story when the actor has not liked it yet and unlikes
// it otherwise
func (u *storyUsecase) ToggleLike(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.LikeResponse, error) {
	liked, count, err := u.storyRepo.ToggleLike(ctx, id, actor.ID)
	if err != nil {
		if isForeignKeyError(err, "story") {
			return nil, ErrStoryNotFound
		}
		u.log.Warnf("Failed to toggle like on story %s: %+v", id, err)
		return nil, err
	}

	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (u *storyUsecase) AddComment(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > entity.MaxCommentContent {
		return nil, fmt.Errorf("%w: comment is required and at most %d characters", ErrInvalidArgument, entity.MaxCommentContent)
	}

	comment := &entity.StoryComment{
		StoryID:     id,
		UserID:      actor.ID,
		Content:     content,
		IsAnonymous: req.IsAnonymous,
	}

	if err := u.storyRepo.AddComment(ctx, comment); err != nil {
		if isForeignKeyError(err, "story") {
			return nil, ErrStoryNotFound
		}
		u.log.Warnf("Failed to add comment to story %s: %+v", id, err)
		return nil, err
	}

	if !comment.IsAnonymous {
		user, err := u.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to load comment author %s: %+v", actor.ID, err)
		}
		comment.User = user
	}

	return converter.CommentToResponse(comment), nil
}

package handler

import (
	"errors"
	"net/http"

	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/usecase"
	"healthconnect/pkg/response"
	"healthconnect/pkg/validator"
)

type StoryHandler struct {
	storyUsecase usecase.StoryUsecase
	validator    *validator.CustomValidator
}

func NewStoryHandler(storyUsecase usecase.StoryUsecase, validator *validator.CustomValidator) *StoryHandler {
	return &StoryHandler{
		storyUsecase: storyUsecase,
		validator:    validator,
	}
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateStoryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	story, err := h.storyUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, err, "Could not create story")
		return
	}

	response.Success(w, http.StatusCreated, "Story created successfully", story)
}

func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to fetch stories")
		return
	}

	response.Success(w, http.StatusOK, "Stories retrieved successfully", stories)
}

func (h *StoryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	stories, err := h.storyUsecase.ListMine(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Could not fetch your stories")
		return
	}

	response.Success(w, http.StatusOK, "Stories retrieved successfully", stories)
}

func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "story")
	if !ok {
		return
	}

	story, err := h.storyUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Could not fetch story")
		return
	}

	response.Success(w, http.StatusOK, "Story retrieved successfully", story)
}

func (h *StoryHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "story")
	if !ok {
		return
	}

	like, err := h.storyUsecase.ToggleLike(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, err, "Could not toggle like")
		return
	}

	response.Success(w, http.StatusOK, "Like updated", like)
}

func (h *StoryHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "story")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	comment, err := h.storyUsecase.AddComment(r.Context(), actor, id, &req)
	if err != nil {
		h.writeError(w, err, "Could not add comment")
		return
	}

	response.Success(w, http.StatusCreated, "Comment added successfully", comment)
}

func (h *StoryHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrStoryNotFound):
		response.NotFound(w, "Story not found")
	case errors.Is(err, usecase.ErrInvalidArgument):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

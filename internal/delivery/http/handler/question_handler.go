package handler

import (
	"errors"
	"net/http"

	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/usecase"
	"healthconnect/pkg/response"
	"healthconnect/pkg/validator"
)

type QuestionHandler struct {
	questionUsecase usecase.QuestionUsecase
	validator       *validator.CustomValidator
}

func NewQuestionHandler(questionUsecase usecase.QuestionUsecase, validator *validator.CustomValidator) *QuestionHandler {
	return &QuestionHandler{
		questionUsecase: questionUsecase,
		validator:       validator,
	}
}

func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.AskQuestionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	question, err := h.questionUsecase.Ask(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, err, "Failed to ask question")
		return
	}

	response.Success(w, http.StatusCreated, "Question submitted successfully", question)
}

func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get questions")
		return
	}

	response.Success(w, http.StatusOK, "Questions retrieved successfully", questions)
}

func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "question")
	if !ok {
		return
	}

	var req dto.AnswerQuestionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	question, err := h.questionUsecase.Answer(r.Context(), actor, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to answer question")
		return
	}

	response.Success(w, http.StatusOK, "Question answered successfully", question)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "question")
	if !ok {
		return
	}

	if err := h.questionUsecase.Delete(r.Context(), actor, id); err != nil {
		h.writeError(w, err, "Failed to delete question")
		return
	}

	response.Success(w, http.StatusOK, "Question deleted successfully", nil)
}

func (h *QuestionHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrQuestionNotFound):
		response.NotFound(w, "Question not found")
	case errors.Is(err, usecase.ErrQuestionForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidArgument):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

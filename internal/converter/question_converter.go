package converter

import (
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
)

// QuestionToResponse converts a Question entity to QuestionResponse DTO
func QuestionToResponse(question *entity.Question) *dto.QuestionResponse {
	if question == nil {
		return nil
	}

	return &dto.QuestionResponse{
		ID:         question.ID,
		Question:   question.Question,
		Answer:     question.Answer,
		IsAnswered: question.IsAnswered(),
		AnsweredBy: UserToSummary(question.Answerer),
		AskedAt:    question.AskedAt,
		AnsweredAt: question.AnsweredAt,
	}
}

// QuestionsToResponse converts a slice of Question entities to QuestionListResponse DTO
func QuestionsToResponse(questions []entity.Question) *dto.QuestionListResponse {
	responses := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = *QuestionToResponse(&questions[i])
	}
	return &dto.QuestionListResponse{
		Questions: responses,
		Total:     len(responses),
	}
}

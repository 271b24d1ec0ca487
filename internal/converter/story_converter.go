package converter

import (
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
)

// StoryToResponse converts a Story entity to StoryResponse DTO
func StoryToResponse(story *entity.Story) *dto.StoryResponse {
	if story == nil {
		return nil
	}

	response := &dto.StoryResponse{
		ID:           story.ID,
		Title:        story.Title,
		Content:      story.Content,
		Category:     string(story.Category),
		Author:       authorSummary(story.Author),
		LikeCount:    story.LikeCount,
		CommentCount: story.CommentCount,
		CreatedAt:    story.CreatedAt,
		UpdatedAt:    story.UpdatedAt,
	}

	if len(story.Comments) > 0 {
		response.Comments = make([]dto.CommentResponse, len(story.Comments))
		for i := range story.Comments {
			response.Comments[i] = *CommentToResponse(&story.Comments[i])
		}
	}

	return response
}

// StoriesToResponse converts a slice of Story entities to StoryListResponse DTO
func StoriesToResponse(stories []entity.Story) *dto.StoryListResponse {
	responses := make([]dto.StoryResponse, len(stories))
	for i := range stories {
		responses[i] = *StoryToResponse(&stories[i])
	}
	return &dto.StoryListResponse{
		Stories: responses,
		Total:   len(responses),
	}
}

// CommentToResponse converts a StoryComment entity, hiding the author of
// anonymous comments.
func CommentToResponse(comment *entity.StoryComment) *dto.CommentResponse {
	if comment == nil {
		return nil
	}

	response := &dto.CommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		IsAnonymous: comment.IsAnonymous,
		CreatedAt:   comment.CreatedAt,
	}
	if !comment.IsAnonymous {
		response.User = authorSummary(comment.User)
	}
	return response
}

// authorSummary exposes name and user type only; community posts never leak
// email addresses.
func authorSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:       user.ID,
		Name:     user.Name,
		UserType: string(user.UserType),
	}
}

package converter

import (
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		UserType:        string(user.UserType),
		Role:            string(user.Role()),
		IsEmailVerified: user.IsEmailVerified,
		IsActive:        user.IsActive,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// UserToSummary converts a User entity to its public summary
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}

	return &dto.UserSummary{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		UserType: string(user.UserType),
	}
}

// ProfessionalsToResponse converts directory entries to ProfessionalListResponse DTO
func ProfessionalsToResponse(users []entity.User) *dto.ProfessionalListResponse {
	professionals := make([]dto.UserSummary, len(users))
	for i := range users {
		professionals[i] = dto.UserSummary{
			ID:    users[i].ID,
			Name:  users[i].Name,
			Email: users[i].Email,
		}
	}
	return &dto.ProfessionalListResponse{
		Professionals: professionals,
		Total:         len(professionals),
	}
}

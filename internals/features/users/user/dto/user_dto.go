package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "capstonehub_backend/internals/features/users/user/model"
)

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT ADVISOR ADMIN"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,max=100"`
	StudentNumber *string `json:"student_number" validate:"omitempty,max=20"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	UserName      string    `json:"user_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	StudentNumber *string   `json:"student_number,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:            u.ID,
		UserName:      u.UserName,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		StudentNumber: u.StudentNumber,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

func ToUserResponses(users []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

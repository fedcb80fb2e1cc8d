package dto

import (
	"time"

	"github.com/google/uuid"

	teamModel "capstonehub_backend/internals/features/capstone/team/model"
)

type CreateTeamRequest struct {
	SectionID uuid.UUID `json:"section_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
}

type InviteMemberRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

type TeamMemberResponse struct {
	TeamMemberID  uuid.UUID `json:"team_member_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	StudentNumber *string   `json:"student_number,omitempty"`
	IsLeader      bool      `json:"is_leader"`
	JoinedAt      time.Time `json:"joined_at"`
}

type TeamResponse struct {
	Team    teamModel.TeamModel  `json:"team"`
	Members []TeamMemberResponse `json:"members"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamMemberModel joins users to teams; one row per (team, user)
type TeamMemberModel struct {
	TeamMemberID       uuid.UUID `gorm:"column:team_member_id;type:uuid;primaryKey" json:"team_member_id"`
	TeamMemberTeamID   uuid.UUID `gorm:"column:team_member_team_id;type:uuid;not null;index:idx_team_member_pair,unique" json:"team_member_team_id"`
	TeamMemberUserID   uuid.UUID `gorm:"column:team_member_user_id;type:uuid;not null;index:idx_team_member_pair,unique" json:"team_member_user_id"`
	TeamMemberIsLeader bool      `gorm:"column:team_member_is_leader;not null;default:false" json:"team_member_is_leader"`
	TeamMemberJoinedAt time.Time `gorm:"column:team_member_joined_at;autoCreateTime" json:"team_member_joined_at"`
}

func (TeamMemberModel) TableName() string {
	return "team_members"
}

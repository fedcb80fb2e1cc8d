package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel is an admin-defined milestone within a section
type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventSectionID   uuid.UUID `gorm:"column:event_section_id;type:uuid;not null;index" json:"event_section_id"`
	EventTitle       string    `gorm:"column:event_title;size:200;not null" json:"event_title"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventDueDate     time.Time `gorm:"column:event_due_date;not null" json:"event_due_date"`
	EventWeight      int       `gorm:"column:event_weight;not null;default:0" json:"event_weight"`
	EventCreatedAt   time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

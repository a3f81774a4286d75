package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string  `gorm:"not null;index"`
	ActorID *string // user who triggered the notification, if any
	Type    string  `gorm:"not null"` // "new_application", "application_status", ...
	Title   string  `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"gig_id": "...", "application_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}

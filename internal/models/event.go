package models

import "time"

// Event is a "what's on" listing: a scheduled activity with one or more
// time slots that other users can RSVP to.
type Event struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex;not null"`
	CreatedBy   string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      EventStatus `gorm:"type:varchar(20);default:'draft'"`

	// Capacity fields. TotalSpots is ignored when IsUnlimitedSpots is set.
	TotalSpots        *int
	IsUnlimitedSpots  bool `gorm:"default:false"`
	MaxSpotsPerPerson int  `gorm:"default:1"`
	RSVPDeadline      *time.Time
	IsPaid            bool `gorm:"default:false"`

	Venue string
	City  string

	ScheduleSlots []ScheduleSlot `gorm:"foreignKey:EventID"`
}

// ScheduleSlot is one attendable time window of an event.
type ScheduleSlot struct {
	BaseModel
	EventID   string    `gorm:"not null;index"`
	Date      time.Time `gorm:"not null"`
	StartTime string    `gorm:"type:varchar(8)"` // "18:30"
	EndTime   string    `gorm:"type:varchar(8)"`
	Timezone  string    `gorm:"type:varchar(64)"`
	SortOrder int       `gorm:"default:0"`
}

// RSVPOpen reports whether the event still accepts RSVPs at the given
// time. Capacity is checked separately.
func (e *Event) RSVPOpen(now time.Time) bool {
	if e.Status != EventStatusPublished {
		return false
	}
	if e.RSVPDeadline != nil && e.RSVPDeadline.Before(now) {
		return false
	}
	return true
}

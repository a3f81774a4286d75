package dto

import (
	"time"

	"heyprodata_backend/internal/models"
)

type ScheduleSlotInput struct {
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
	Timezone  string    `json:"timezone" validate:"omitempty,max=64"`
}

type CreateEventRequest struct {
	Title             string              `json:"title" validate:"required,min=3,max=150"`
	Description       string              `json:"description" validate:"omitempty,max=10000"`
	TotalSpots        *int                `json:"total_spots,omitempty" validate:"omitempty,min=1"`
	IsUnlimitedSpots  bool                `json:"is_unlimited_spots"`
	MaxSpotsPerPerson int                 `json:"max_spots_per_person" validate:"omitempty,min=1"`
	RSVPDeadline      *time.Time          `json:"rsvp_deadline,omitempty"`
	IsPaid            bool                `json:"is_paid"`
	Venue             string              `json:"venue" validate:"omitempty,max=200"`
	City              string              `json:"city" validate:"omitempty,max=100"`
	ScheduleSlots     []ScheduleSlotInput `json:"schedule_slots" validate:"required,min=1,dive"`
}

type UpdateEventRequest struct {
	Title             *string             `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description       *string             `json:"description,omitempty" validate:"omitempty,max=10000"`
	TotalSpots        *int                `json:"total_spots,omitempty" validate:"omitempty,min=1"`
	IsUnlimitedSpots  *bool               `json:"is_unlimited_spots,omitempty"`
	MaxSpotsPerPerson *int                `json:"max_spots_per_person,omitempty" validate:"omitempty,min=1"`
	RSVPDeadline      *time.Time          `json:"rsvp_deadline,omitempty"`
	IsPaid            *bool               `json:"is_paid,omitempty"`
	Venue             *string             `json:"venue,omitempty" validate:"omitempty,max=200"`
	City              *string             `json:"city,omitempty" validate:"omitempty,max=100"`
	ScheduleSlots     []ScheduleSlotInput `json:"schedule_slots,omitempty" validate:"omitempty,min=1,dive"`
}

type ScheduleSlotResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Timezone  string    `json:"timezone,omitempty"`
	SortOrder int       `json:"sort_order"`
}

type EventResponse struct {
	ID                string                 `json:"id"`
	Slug              string                 `json:"slug"`
	CreatedBy         string                 `json:"created_by"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description,omitempty"`
	Status            models.EventStatus     `json:"status"`
	TotalSpots        *int                   `json:"total_spots,omitempty"`
	IsUnlimitedSpots  bool                   `json:"is_unlimited_spots"`
	MaxSpotsPerPerson int                    `json:"max_spots_per_person"`
	RSVPDeadline      *time.Time             `json:"rsvp_deadline,omitempty"`
	IsPaid            bool                   `json:"is_paid"`
	Venue             string                 `json:"venue,omitempty"`
	City              string                 `json:"city,omitempty"`
	ScheduleSlots     []ScheduleSlotResponse `json:"schedule_slots"`
	CreatedAt         time.Time              `json:"created_at"`
}

type EventListResponse struct {
	Events   []EventResponse `json:"events"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

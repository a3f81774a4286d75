package dto

import (
	"time"

	"heyprodata_backend/internal/models"
)

type CreateRSVPRequest struct {
	NumberOfSpots int      `json:"number_of_spots" validate:"omitempty,min=1"`
	ScheduleIDs   []string `json:"schedule_ids" validate:"omitempty,dive,uuid4"`
}

type RSVPResponse struct {
	ID              string               `json:"id"`
	EventID         string               `json:"event_id"`
	UserID          string               `json:"user_id"`
	NumberOfSpots   int                  `json:"number_of_spots"`
	Status          models.RSVPStatus    `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	TicketNumber    string               `json:"ticket_number"`
	ReferenceNumber string               `json:"reference_number"`
	ScheduleIDs     []string             `json:"schedule_ids,omitempty"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// RSVPListItem is one creator-facing row, enriched with attendee details.
type RSVPListItem struct {
	RSVPResponse
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email,omitempty"`
}

type RSVPListResponse struct {
	RSVPs    []RSVPListItem      `json:"rsvps"`
	Summary  *models.RSVPSummary `json:"summary"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// MyRSVPItem is an attendee's own ticket, with event context.
type MyRSVPItem struct {
	RSVPResponse
	EventTitle string             `json:"event_title"`
	EventSlug  string             `json:"event_slug"`
	EventCity  string             `json:"event_city,omitempty"`
	EventState models.EventStatus `json:"event_status"`
}

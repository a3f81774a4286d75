package models

import "time"

// RSVP is a user's reservation of one or more spots at an event.
// Cancellation is a soft status transition; RSVP rows are never
// physically deleted.
type RSVP struct {
	BaseModel
	EventID       string        `gorm:"not null;index"`
	UserID        string        `gorm:"not null;index"`
	NumberOfSpots int           `gorm:"not null;default:1"`
	Status        RSVPStatus    `gorm:"type:varchar(20);default:'confirmed'"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);default:'n/a'"`

	// Opaque identifiers issued at creation: TicketNumber for
	// attendee-facing display, ReferenceNumber for creator-facing
	// reconciliation.
	TicketNumber    string `gorm:"uniqueIndex;not null"`
	ReferenceNumber string `gorm:"uniqueIndex;not null"`

	CancelledAt *time.Time

	DateSelections []RSVPDateSelection `gorm:"foreignKey:RSVPID"`
}

// RSVPDateSelection links an RSVP to one of the event's schedule slots.
type RSVPDateSelection struct {
	BaseModel
	RSVPID         string `gorm:"not null;index"`
	ScheduleSlotID string `gorm:"not null;index"`
}

// RSVPSummary is the creator-facing aggregation over an event's RSVPs.
type RSVPSummary struct {
	Confirmed   int64 `json:"confirmed"`
	Cancelled   int64 `json:"cancelled"`
	Waitlist    int64 `json:"waitlist"`
	Paid        int64 `json:"paid"`
	Unpaid      int64 `json:"unpaid"`
	SpotsBooked int64 `json:"spots_booked"`
}

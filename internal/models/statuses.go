package models

type UserStatus string
type GigStatus string
type ApplicationStatus string
type EventStatus string
type RSVPStatus string
type PaymentStatus string
type PostKind string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	GigStatusActive  GigStatus = "active"
	GigStatusClosed  GigStatus = "closed"
	GigStatusExpired GigStatus = "expired"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusConfirmed   ApplicationStatus = "confirmed"
	ApplicationStatusReleased    ApplicationStatus = "released"

	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"

	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusCancelled RSVPStatus = "cancelled"
	RSVPStatusWaitlist  RSVPStatus = "waitlist"

	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusNotApplicable PaymentStatus = "n/a"

	PostKindSlate  PostKind = "slate"
	PostKindCollab PostKind = "collab"
)

// ValidApplicationStatus reports whether s is a member of the application
// status enum.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusShortlisted,
		ApplicationStatusConfirmed, ApplicationStatusReleased:
		return true
	}
	return false
}

// applicationTransitions is the forward-only transition table.
// "released" is terminal; re-opening a released application is not
// permitted.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusShortlisted, ApplicationStatusConfirmed, ApplicationStatusReleased},
	ApplicationStatusShortlisted: {ApplicationStatusConfirmed, ApplicationStatusReleased},
	ApplicationStatusConfirmed:   {ApplicationStatusReleased},
	ApplicationStatusReleased:    {},
}

// CanTransitionApplication reports whether an application may move from
// one status to another. A same-status transition is allowed and treated
// by callers as a no-op.
func CanTransitionApplication(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

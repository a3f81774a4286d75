package models

import (
	"time"

	"gorm.io/datatypes"
)

// GigApplication is one user's request to be considered for a gig.
// At most one application may exist per (gig, applicant) pair.
type GigApplication struct {
	BaseModel
	GigID           string            `gorm:"not null;index;uniqueIndex:idx_gig_applicant"`
	ApplicantUserID string            `gorm:"not null;index;uniqueIndex:idx_gig_applicant"`
	Status          ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`
	CoverLetter     string
	PortfolioLinks  datatypes.JSON `gorm:"type:jsonb"` // ["https://...", ...]
	ResumeUploadID  *string
	StatusChangedAt *time.Time
}

// ApplicationStats aggregates a set of applications by status.
type ApplicationStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Shortlisted int64 `json:"shortlisted"`
	Confirmed   int64 `json:"confirmed"`
	Released    int64 `json:"released"`
}

package dto

import (
	"time"

	"heyprodata_backend/internal/models"
)

type ApplyRequest struct {
	CoverLetter    string   `json:"cover_letter" validate:"omitempty,max=10000"`
	PortfolioLinks []string `json:"portfolio_links,omitempty" validate:"omitempty,dive,url"`
	ResumeUploadID *string  `json:"resume_upload_id,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}

// ApplicationResponse carries one application. Applicant contact fields
// are populated only when the requester is the gig creator.
type ApplicationResponse struct {
	ID              string                   `json:"id"`
	GigID           string                   `json:"gig_id"`
	ApplicantUserID string                   `json:"applicant_user_id"`
	ApplicantName   string                   `json:"applicant_name,omitempty"`
	ContactEmail    string                   `json:"contact_email,omitempty"`
	ContactPhone    string                   `json:"contact_phone,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
	CoverLetter     string                   `json:"cover_letter,omitempty"`
	PortfolioLinks  []string                 `json:"portfolio_links,omitempty"`
	ResumeUploadID  *string                  `json:"resume_upload_id,omitempty"`
	StatusChangedAt *time.Time               `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse    `json:"applications"`
	Stats        *models.ApplicationStats `json:"stats"`
}

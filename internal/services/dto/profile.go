package dto

// ProfileResponse is the public profile shape. Contact fields are only
// populated for the owner (and for gig creators viewing applicants).
type ProfileResponse struct {
	UserID       string   `json:"user_id"`
	DisplayName  string   `json:"display_name"`
	Headline     string   `json:"headline,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	City         string   `json:"city,omitempty"`
	Discipline   string   `json:"discipline,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	AvatarID     *string  `json:"avatar_id,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
	IsComplete   bool     `json:"is_complete"`
}

// ProfileCompletenessResponse reports whether a profile meets the bar
// for applying to gigs, and which fields still need filling in.
type ProfileCompletenessResponse struct {
	IsComplete    bool     `json:"is_complete"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName  *string  `json:"display_name,omitempty" validate:"omitempty,min=2,max=100"`
	Headline     *string  `json:"headline,omitempty" validate:"omitempty,max=200"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Discipline   *string  `json:"discipline,omitempty" validate:"omitempty,max=100"`
	Skills       []string `json:"skills,omitempty"`
	AvatarID     *string  `json:"avatar_id,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
}

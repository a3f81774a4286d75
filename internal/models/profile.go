package models

import "gorm.io/datatypes"

type Profile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex"`
	DisplayName string
	Headline    string
	Bio         string
	City        string
	Discipline  string         // e.g. "photographer", "stylist", "producer"
	Skills      datatypes.JSON `gorm:"type:jsonb"` // ["lighting", "retouching"]
	AvatarID    *string
	// Contact fields are redacted for everyone except the owner and,
	// on applications, the gig creator.
	ContactEmail string
	ContactPhone string
	IsPublic     bool `gorm:"default:true"`
}

// IsComplete gates gig applications: an applicant must fill in the
// basics before they can apply.
func (p *Profile) IsComplete() bool {
	return p.DisplayName != "" && p.Discipline != "" && p.City != "" && p.Bio != ""
}

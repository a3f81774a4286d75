package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gig struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex;not null"`
	CreatedBy   string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      GigStatus `gorm:"type:varchar(20);default:'active'"`
	ExpiresAt   *time.Time

	// Budget: either a range in a currency, or "request quote".
	BudgetMin      *float64
	BudgetMax      *float64
	Currency       string `gorm:"type:varchar(8)"`
	IsRequestQuote bool   `gorm:"default:false"`

	Categories datatypes.JSON `gorm:"type:jsonb"` // ["photography", "styling"]
	City       string
	Views      int
}

// AcceptsApplications reports whether a gig can still be applied to.
func (g *Gig) AcceptsApplications(now time.Time) bool {
	if g.Status != GigStatusActive {
		return false
	}
	if g.ExpiresAt != nil && g.ExpiresAt.Before(now) {
		return false
	}
	return true
}

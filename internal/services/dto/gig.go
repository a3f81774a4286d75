package dto

import (
	"time"

	"heyprodata_backend/internal/models"
)

// --- Gig requests ---

type CreateGigRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=150"`
	Description    string     `json:"description" validate:"omitempty,max=10000"`
	BudgetMin      *float64   `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax      *float64   `json:"budget_max,omitempty" validate:"omitempty,min=0,gtefield=BudgetMin"`
	Currency       string     `json:"currency" validate:"omitempty,len=3"`
	IsRequestQuote bool       `json:"is_request_quote"`
	Categories     []string   `json:"categories,omitempty"`
	City           string     `json:"city" validate:"omitempty,max=100"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type UpdateGigRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	BudgetMin      *float64   `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax      *float64   `json:"budget_max,omitempty" validate:"omitempty,min=0"`
	Currency       *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsRequestQuote *bool      `json:"is_request_quote,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	City           *string    `json:"city,omitempty" validate:"omitempty,max=100"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// --- Gig responses ---

type GigResponse struct {
	ID             string           `json:"id"`
	Slug           string           `json:"slug"`
	CreatedBy      string           `json:"created_by"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         models.GigStatus `json:"status"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
	BudgetMin      *float64         `json:"budget_min,omitempty"`
	BudgetMax      *float64         `json:"budget_max,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	IsRequestQuote bool             `json:"is_request_quote"`
	Categories     []string         `json:"categories,omitempty"`
	City           string           `json:"city,omitempty"`
	Views          int              `json:"views"`
	CreatedAt      time.Time        `json:"created_at"`
}

type GigListResponse struct {
	Gigs     []GigResponse `json:"gigs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

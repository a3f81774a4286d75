package dto

import (
	"time"

	"heyprodata_backend/internal/models"
)

type CreatePostRequest struct {
	Kind     string   `json:"kind" validate:"omitempty,is-post-kind"`
	Body     string   `json:"body" validate:"required,min=1,max=10000"`
	MediaIDs []string `json:"media_ids,omitempty" validate:"omitempty,max=10"`
}

type PostResponse struct {
	ID         string          `json:"id"`
	AuthorID   string          `json:"author_id"`
	AuthorName string          `json:"author_name,omitempty"`
	Kind       models.PostKind `json:"kind"`
	Body       string          `json:"body"`
	MediaIDs   []string        `json:"media_ids,omitempty"`
	LikeCount  int             `json:"like_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

type FeedResponse struct {
	Posts    []PostResponse `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

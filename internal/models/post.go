package models

import "gorm.io/datatypes"

// Post is a slate-feed or collaboration post.
type Post struct {
	BaseModel
	AuthorID  string         `gorm:"not null;index"`
	Kind      PostKind       `gorm:"type:varchar(10);default:'slate'"`
	Body      string         `gorm:"not null"`
	MediaIDs  datatypes.JSON `gorm:"type:jsonb"` // upload ids
	LikeCount int            `gorm:"default:0"`
}

// PostLike records one user's like of a post. The unique index makes a
// duplicate like a constraint violation, surfaced as a conflict.
type PostLike struct {
	BaseModel
	PostID string `gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	UserID string `gorm:"not null;index;uniqueIndex:idx_post_user_like"`
}

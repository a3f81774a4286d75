package models

type Upload struct {
	BaseModel
	UserID       string `gorm:"not null;index"`
	Path         string `gorm:"not null"`
	OriginalName string `gorm:"column:original_name"`
	MimeType     string
	Size         int64
	Usage        string // "avatar", "resume", "post_media", "event_cover"
	URL          string `gorm:"column:url"`
	IsPublic     bool   `gorm:"default:true"`
}

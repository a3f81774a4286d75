package database

import (
	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema. The uuid-ossp extension backs the
// uuid_generate_v4() column defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Gig{},
		&models.GigApplication{},
		&models.Event{},
		&models.ScheduleSlot{},
		&models.RSVP{},
		&models.RSVPDateSelection{},
		&models.Post{},
		&models.PostLike{},
		&models.Notification{},
		&models.Upload{},
	)
}

package services

import "heyprodata_backend/internal/email"

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	GigService          GigService
	ApplicationService  ApplicationService
	EventService        EventService
	RSVPService         RSVPService
	FeedService         FeedService
	NotificationService NotificationService
	UploadService       UploadService
	EmailProvider       email.Provider
}

package handlers

// AppHandlers bundles every route-owning handler for registration.
type AppHandlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Gig          *GigHandler
	Application  *ApplicationHandler
	Event        *EventHandler
	RSVP         *RSVPHandler
	Feed         *FeedHandler
	Notification *NotificationHandler
	Upload       *UploadHandler
}

package services

import (
	"strings"
	"sync"
	"time"

	"heyprodata_backend/internal/email"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the behavior the real
// implementations get from the database: unique constraints, capacity
// recounts, soft cancellation.

type fakeGigRepo struct {
	mu   sync.Mutex
	gigs map[string]*models.Gig
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: make(map[string]*models.Gig)}
}

func (r *fakeGigRepo) Create(gig *models.Gig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gig.ID == "" {
		gig.ID = uuid.NewString()
	}
	gig.CreatedAt = time.Now()
	cp := *gig
	r.gigs[gig.ID] = &cp
	return nil
}

func (r *fakeGigRepo) FindByID(id string) (*models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gig, ok := r.gigs[id]
	if !ok {
		return nil, repositories.ErrGigNotFound
	}
	cp := *gig
	return &cp, nil
}

func (r *fakeGigRepo) FindBySlug(slug string) (*models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, gig := range r.gigs {
		if gig.Slug == slug {
			cp := *gig
			return &cp, nil
		}
	}
	return nil, repositories.ErrGigNotFound
}

func (r *fakeGigRepo) Update(gig *models.Gig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *gig
	r.gigs[gig.ID] = &cp
	return nil
}

func (r *fakeGigRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gigs[id]; !ok {
		return repositories.ErrGigNotFound
	}
	delete(r.gigs, id)
	return nil
}

func (r *fakeGigRepo) List(criteria repositories.GigCriteria) ([]models.Gig, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Gig
	for _, gig := range r.gigs {
		if criteria.Status != "" && string(gig.Status) != criteria.Status {
			continue
		}
		if criteria.City != "" && gig.City != criteria.City {
			continue
		}
		if criteria.CreatedBy != "" && gig.CreatedBy != criteria.CreatedBy {
			continue
		}
		out = append(out, *gig)
	}
	return out, int64(len(out)), nil
}

func (r *fakeGigRepo) IncrementViews(id string) error { return nil }

func (r *fakeGigRepo) ExpireOverdue(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, gig := range r.gigs {
		if gig.Status == models.GigStatusActive && gig.ExpiresAt != nil && gig.ExpiresAt.Before(now) {
			gig.Status = models.GigStatusExpired
			count++
		}
	}
	return count, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*models.GigApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.GigApplication)}
}

func (r *fakeApplicationRepo) Create(app *models.GigApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.GigID == app.GigID && existing.ApplicantUserID == app.ApplicantUserID {
			return repositories.ErrApplicationAlreadyExists
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now()
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.GigApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	cp := *app
	return &cp, nil
}

func (r *fakeApplicationRepo) FindByGigAndApplicant(gigID, applicantID string) (*models.GigApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.GigID == gigID && app.ApplicantUserID == applicantID {
			cp := *app
			return &cp, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByGig(gigID string, status models.ApplicationStatus) ([]models.GigApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.GigApplication
	for _, app := range r.apps {
		if app.GigID != gigID {
			continue
		}
		if status != "" && app.Status != status {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(applicantID string) ([]models.GigApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.GigApplication
	for _, app := range r.apps {
		if app.ApplicantUserID == applicantID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	now := time.Now()
	app.Status = status
	app.StatusChangedAt = &now
	return nil
}

func (r *fakeApplicationRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) StatsByGig(gigID string) (*models.ApplicationStats, error) {
	apps, _ := r.ListByGig(gigID, "")
	return statsOf(apps), nil
}

func (r *fakeApplicationRepo) StatsByApplicant(applicantID string) (*models.ApplicationStats, error) {
	apps, _ := r.ListByApplicant(applicantID)
	return statsOf(apps), nil
}

func statsOf(apps []models.GigApplication) *models.ApplicationStats {
	var stats models.ApplicationStats
	for _, app := range apps {
		stats.Total++
		switch app.Status {
		case models.ApplicationStatusPending:
			stats.Pending++
		case models.ApplicationStatusShortlisted:
			stats.Shortlisted++
		case models.ApplicationStatusConfirmed:
			stats.Confirmed++
		case models.ApplicationStatusReleased:
			stats.Released++
		}
	}
	return &stats
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile // keyed by user ID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *fakeProfileRepo) Create(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *profile
	return &cp, nil
}

func (r *fakeProfileRepo) Update(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeUploadRepo struct {
	mu      sync.Mutex
	uploads map[string]*models.Upload
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: make(map[string]*models.Upload)}
}

func (r *fakeUploadRepo) Create(upload *models.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	cp := *upload
	r.uploads[upload.ID] = &cp
	return nil
}

func (r *fakeUploadRepo) FindByID(id string) (*models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	upload, ok := r.uploads[id]
	if !ok {
		return nil, repositories.ErrUploadNotFound
	}
	cp := *upload
	return &cp, nil
}

func (r *fakeUploadRepo) ListByUser(userID string) ([]models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Upload
	for _, upload := range r.uploads {
		if upload.UserID == userID {
			out = append(out, *upload)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.uploads[id]; !ok {
		return repositories.ErrUploadNotFound
	}
	delete(r.uploads, id)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) CreateNewApplicationNotification(creatorID, actorID, gigID, applicationID, applicantName, gigTitle string) error {
	return r.Create(&models.Notification{
		UserID: creatorID, ActorID: &actorID,
		Type: repositories.NotificationTypeNewApplication, Title: "New application",
	})
}

func (r *fakeNotificationRepo) CreateApplicationStatusNotification(applicantID, actorID, gigID, gigTitle string, status models.ApplicationStatus) error {
	return r.Create(&models.Notification{
		UserID: applicantID, ActorID: &actorID,
		Type: repositories.NotificationTypeApplicationStatus, Title: string(status),
	})
}

func (r *fakeNotificationRepo) CreateNewRSVPNotification(creatorID, actorID, eventID, rsvpID, attendeeName, eventTitle string, spots int) error {
	return r.Create(&models.Notification{
		UserID: creatorID, ActorID: &actorID,
		Type: repositories.NotificationTypeNewRSVP, Title: "New RSVP",
	})
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*models.Event
	slots  map[string][]models.ScheduleSlot // keyed by event ID
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string]*models.Event),
		slots:  make(map[string][]models.ScheduleSlot),
	}
}

func (r *fakeEventRepo) CreateWithSlots(event *models.Event, slots []models.ScheduleSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		slots[i].EventID = event.ID
	}
	event.ScheduleSlots = slots
	cp := *event
	r.events[event.ID] = &cp
	r.slots[event.ID] = append([]models.ScheduleSlot(nil), slots...)
	return nil
}

func (r *fakeEventRepo) FindByID(id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	cp := *event
	cp.ScheduleSlots = append([]models.ScheduleSlot(nil), r.slots[id]...)
	return &cp, nil
}

func (r *fakeEventRepo) FindBySlug(slug string) (*models.Event, error) {
	r.mu.Lock()
	id := ""
	for _, event := range r.events {
		if event.Slug == slug {
			id = event.ID
			break
		}
	}
	r.mu.Unlock()
	if id == "" {
		return nil, repositories.ErrEventNotFound
	}
	return r.FindByID(id)
}

func (r *fakeEventRepo) Update(event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) UpdateWithSlots(event *models.Event, slots []models.ScheduleSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		slots[i].EventID = event.ID
	}
	event.ScheduleSlots = slots
	cp := *event
	r.events[event.ID] = &cp
	r.slots[event.ID] = append([]models.ScheduleSlot(nil), slots...)
	return nil
}

func (r *fakeEventRepo) ListPublished(criteria repositories.EventCriteria) ([]models.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, event := range r.events {
		if event.Status != models.EventStatusPublished {
			continue
		}
		if criteria.City != "" && event.City != criteria.City {
			continue
		}
		out = append(out, *event)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) ListByCreator(creatorID string) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, event := range r.events {
		if event.CreatedBy == creatorID {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindSlots(eventID string) ([]models.ScheduleSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ScheduleSlot(nil), r.slots[eventID]...), nil
}

// fakeRSVPRepo mirrors the real repository's transactional capacity
// check: the mutex stands in for the row lock.
type fakeRSVPRepo struct {
	mu        sync.Mutex
	rsvps     map[string]*models.RSVP
	eventRepo *fakeEventRepo
}

func newFakeRSVPRepo(eventRepo *fakeEventRepo) *fakeRSVPRepo {
	return &fakeRSVPRepo{
		rsvps:     make(map[string]*models.RSVP),
		eventRepo: eventRepo,
	}
}

func (r *fakeRSVPRepo) CreateWithCapacityCheck(rsvp *models.RSVP, slotIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, err := r.eventRepo.FindByID(rsvp.EventID)
	if err != nil {
		return err
	}

	if !event.IsUnlimitedSpots {
		total := 0
		if event.TotalSpots != nil {
			total = *event.TotalSpots
		}
		booked := 0
		for _, existing := range r.rsvps {
			if existing.EventID == rsvp.EventID && existing.Status == models.RSVPStatusConfirmed {
				booked += existing.NumberOfSpots
			}
		}
		available := total - booked
		if available < 0 {
			available = 0
		}
		if rsvp.NumberOfSpots > available {
			return &repositories.ErrInsufficientCapacity{Available: available}
		}
	}

	if len(slotIDs) > 0 {
		valid := make(map[string]bool)
		for _, slot := range event.ScheduleSlots {
			valid[slot.ID] = true
		}
		for _, id := range slotIDs {
			if !valid[id] {
				return repositories.ErrInvalidScheduleSlots
			}
		}
	}

	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}
	rsvp.CreatedAt = time.Now()
	for _, slotID := range slotIDs {
		rsvp.DateSelections = append(rsvp.DateSelections, models.RSVPDateSelection{
			RSVPID:         rsvp.ID,
			ScheduleSlotID: slotID,
		})
	}
	cp := *rsvp
	r.rsvps[rsvp.ID] = &cp
	return nil
}

func (r *fakeRSVPRepo) FindByID(id string) (*models.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp, ok := r.rsvps[id]
	if !ok {
		return nil, repositories.ErrRSVPNotFound
	}
	cp := *rsvp
	return &cp, nil
}

func (r *fakeRSVPRepo) FindConfirmedByEventAndUser(eventID, userID string) (*models.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID && rsvp.UserID == userID && rsvp.Status == models.RSVPStatusConfirmed {
			cp := *rsvp
			return &cp, nil
		}
	}
	return nil, repositories.ErrRSVPNotFound
}

func (r *fakeRSVPRepo) FindLatestByEventAndUser(eventID, userID string) (*models.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.EventID != eventID || rsvp.UserID != userID {
			continue
		}
		if latest == nil || rsvp.CreatedAt.After(latest.CreatedAt) {
			latest = rsvp
		}
	}
	if latest == nil {
		return nil, repositories.ErrRSVPNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeRSVPRepo) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp, ok := r.rsvps[id]
	if !ok {
		return repositories.ErrRSVPNotFound
	}
	if rsvp.Status == models.RSVPStatusCancelled {
		return repositories.ErrRSVPAlreadyCancelled
	}
	now := time.Now()
	rsvp.Status = models.RSVPStatusCancelled
	rsvp.CancelledAt = &now
	return nil
}

func (r *fakeRSVPRepo) ListByEvent(eventID string, criteria repositories.RSVPCriteria) ([]models.RSVP, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.EventID != eventID {
			continue
		}
		if criteria.Status != "" && string(rsvp.Status) != criteria.Status {
			continue
		}
		if criteria.PaymentStatus != "" && string(rsvp.PaymentStatus) != criteria.PaymentStatus {
			continue
		}
		out = append(out, *rsvp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRSVPRepo) ListByUser(userID string) ([]models.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.UserID == userID {
			out = append(out, *rsvp)
		}
	}
	return out, nil
}

func (r *fakeRSVPRepo) Summary(eventID string) (*models.RSVPSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summary models.RSVPSummary
	for _, rsvp := range r.rsvps {
		if rsvp.EventID != eventID {
			continue
		}
		switch rsvp.Status {
		case models.RSVPStatusConfirmed:
			summary.Confirmed++
			summary.SpotsBooked += int64(rsvp.NumberOfSpots)
			switch rsvp.PaymentStatus {
			case models.PaymentStatusPaid:
				summary.Paid++
			case models.PaymentStatusUnpaid:
				summary.Unpaid++
			}
		case models.RSVPStatusCancelled:
			summary.Cancelled++
		case models.RSVPStatusWaitlist:
			summary.Waitlist++
		}
	}
	return &summary, nil
}

func (r *fakeRSVPRepo) SumConfirmedSpots(eventID string) (int64, error) {
	summary, _ := r.Summary(eventID)
	return summary.SpotsBooked, nil
}

type fakeEmailProvider struct {
	mu       sync.Mutex
	messages []email.Message
}

func (p *fakeEmailProvider) Send(msg *email.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, *msg)
	return nil
}

func (p *fakeEmailProvider) Close() error { return nil }

// completeProfile returns a profile that passes the apply-gate.
func completeProfile(userID, name string) *models.Profile {
	return &models.Profile{
		UserID:      userID,
		DisplayName: name,
		Discipline:  "photographer",
		City:        "Berlin",
		Bio:         "Shoots editorial and campaign work.",
		IsPublic:    true,
		ContactEmail: strings.ToLower(strings.ReplaceAll(name, " ", ".")) +
			"@example.com",
	}
}

package services

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"strings"

	"heyprodata_backend/internal/email"
	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// ticketAlphabet excludes ambiguous characters (0/O, 1/I/L) so tickets
// survive being read over the phone or off a door list.
const ticketAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const ticketLength = 8

type RSVPService interface {
	CreateRSVP(eventID, userID string, req *dto.CreateRSVPRequest) (*dto.RSVPResponse, error)
	CancelRSVP(eventID, userID string) error
	ListByEvent(eventID, requesterID string, criteria repositories.RSVPCriteria) (*dto.RSVPListResponse, error)
	ExportCSV(eventID, requesterID string) (string, []byte, error)
	MyTickets(userID string) ([]dto.MyRSVPItem, error)
}

type RSVPServiceImpl struct {
	rsvpRepo      repositories.RSVPRepository
	eventRepo     repositories.EventRepository
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	notifRepo     repositories.NotificationRepository
	emailProvider email.Provider
	now           nowFunc
}

func NewRSVPService(
	rsvpRepo repositories.RSVPRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notifRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) *RSVPServiceImpl {
	return &RSVPServiceImpl{
		rsvpRepo:      rsvpRepo,
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		notifRepo:     notifRepo,
		emailProvider: emailProvider,
		now:           defaultNow,
	}
}

// CreateRSVP reserves spots at an event. Precondition order: event
// exists, published, not the creator, deadline open, no live RSVP for
// this user, spot count within the per-person cap. Capacity itself is
// enforced inside the repository transaction under a row lock, so a
// concurrent pair of requests cannot jointly overbook.
func (s *RSVPServiceImpl) CreateRSVP(eventID, userID string, req *dto.CreateRSVPRequest) (*dto.RSVPResponse, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err, "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if event.Status != models.EventStatusPublished {
		return nil, apperrors.ErrInvalidOperation("rsvp", "This event is not open for RSVPs")
	}

	if event.CreatedBy == userID {
		return nil, apperrors.ErrInvalidOperation("rsvp", "You cannot RSVP to your own event")
	}

	if event.RSVPDeadline != nil && event.RSVPDeadline.Before(s.now()) {
		return nil, apperrors.ErrInvalidOperation("rsvp", "The RSVP deadline for this event has passed")
	}

	if _, err := s.rsvpRepo.FindConfirmedByEventAndUser(eventID, userID); err == nil {
		return nil, apperrors.ErrInvalidOperation("rsvp", "You already have an RSVP for this event")
	} else if !apperrors.Is(err, repositories.ErrRSVPNotFound) {
		return nil, apperrors.InternalError(err)
	}

	spots := req.NumberOfSpots
	if spots == 0 {
		spots = 1
	}
	if spots < 1 || spots > event.MaxSpotsPerPerson {
		return nil, apperrors.ErrInvalidOperation("rsvp",
			fmt.Sprintf("You can reserve between 1 and %d spots", event.MaxSpotsPerPerson))
	}

	paymentStatus := models.PaymentStatusNotApplicable
	if event.IsPaid {
		paymentStatus = models.PaymentStatusUnpaid
	}

	rsvp := &models.RSVP{
		EventID:         eventID,
		UserID:          userID,
		NumberOfSpots:   spots,
		Status:          models.RSVPStatusConfirmed,
		PaymentStatus:   paymentStatus,
		TicketNumber:    generateTicketNumber(),
		ReferenceNumber: generateReferenceNumber(),
	}

	if err := s.rsvpRepo.CreateWithCapacityCheck(rsvp, req.ScheduleIDs); err != nil {
		var capErr *repositories.ErrInsufficientCapacity
		switch {
		case apperrors.As(err, &capErr):
			return nil, apperrors.ErrInvalidOperation("rsvp",
				fmt.Sprintf("Only %d spots available", capErr.Available))
		case apperrors.Is(err, repositories.ErrInvalidScheduleSlots):
			return nil, apperrors.ErrInvalidOperation("rsvp", "One or more selected dates do not belong to this event")
		case apperrors.Is(err, repositories.ErrEventNotFound):
			return nil, apperrors.ErrNotFound(err, "Event not found")
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	go s.afterRSVPCreated(event, rsvp)

	return toRSVPResponse(rsvp), nil
}

func (s *RSVPServiceImpl) CancelRSVP(eventID, userID string) error {
	rsvp, err := s.rsvpRepo.FindLatestByEventAndUser(eventID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRSVPNotFound) {
			return apperrors.ErrNotFound(err, "RSVP not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.rsvpRepo.Cancel(rsvp.ID); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrRSVPAlreadyCancelled):
			return apperrors.ErrInvalidOperation("rsvp", "This RSVP is already cancelled")
		case apperrors.Is(err, repositories.ErrRSVPNotFound):
			return apperrors.ErrNotFound(err, "RSVP not found")
		default:
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *RSVPServiceImpl) ListByEvent(eventID, requesterID string, criteria repositories.RSVPCriteria) (*dto.RSVPListResponse, error) {
	event, err := s.findOwnedEvent(eventID, requesterID)
	if err != nil {
		return nil, err
	}

	normalizePagination(&criteria.Page, &criteria.PageSize)

	rsvps, total, err := s.rsvpRepo.ListByEvent(event.ID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summary, err := s.rsvpRepo.Summary(event.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RSVPListResponse{
		RSVPs:    make([]dto.RSVPListItem, 0, len(rsvps)),
		Summary:  summary,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range rsvps {
		name, contactEmail := s.attendeeDetails(rsvps[i].UserID)
		resp.RSVPs = append(resp.RSVPs, dto.RSVPListItem{
			RSVPResponse:  *toRSVPResponse(&rsvps[i]),
			AttendeeName:  name,
			AttendeeEmail: contactEmail,
		})
	}
	return resp, nil
}

// ExportCSV renders the full attendee list as a CSV document for the
// event creator. Returns the suggested filename and the file body.
func (s *RSVPServiceImpl) ExportCSV(eventID, requesterID string) (string, []byte, error) {
	event, err := s.findOwnedEvent(eventID, requesterID)
	if err != nil {
		return "", nil, err
	}

	rsvps, _, err := s.rsvpRepo.ListByEvent(event.ID, repositories.RSVPCriteria{Page: 1, PageSize: 10000})
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	slots, err := s.eventRepo.FindSlots(event.ID)
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}
	slotDates := make(map[string]string, len(slots))
	for _, slot := range slots {
		slotDates[slot.ID] = slot.Date.Format("2006-01-02") + " " + slot.StartTime
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "email", "spots", "status", "payment_status", "ticket", "reference", "selected_dates", "created_at"}
	if err := w.Write(header); err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	for i := range rsvps {
		name, contactEmail := s.attendeeDetails(rsvps[i].UserID)

		dates := make([]string, 0, len(rsvps[i].DateSelections))
		for _, sel := range rsvps[i].DateSelections {
			if d, ok := slotDates[sel.ScheduleSlotID]; ok {
				dates = append(dates, d)
			}
		}

		row := []string{
			name,
			contactEmail,
			fmt.Sprintf("%d", rsvps[i].NumberOfSpots),
			string(rsvps[i].Status),
			string(rsvps[i].PaymentStatus),
			rsvps[i].TicketNumber,
			rsvps[i].ReferenceNumber,
			strings.Join(dates, "; "),
			rsvps[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return "", nil, apperrors.InternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	filename := fmt.Sprintf("rsvps-%s.csv", event.Slug)
	return filename, buf.Bytes(), nil
}

func (s *RSVPServiceImpl) MyTickets(userID string) ([]dto.MyRSVPItem, error) {
	rsvps, err := s.rsvpRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.MyRSVPItem, 0, len(rsvps))
	for i := range rsvps {
		item := dto.MyRSVPItem{RSVPResponse: *toRSVPResponse(&rsvps[i])}
		if event, err := s.eventRepo.FindByID(rsvps[i].EventID); err == nil {
			item.EventTitle = event.Title
			item.EventSlug = event.Slug
			item.EventCity = event.City
			item.EventState = event.Status
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *RSVPServiceImpl) findOwnedEvent(eventID, requesterID string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err, "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if event.CreatedBy != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return event, nil
}

// attendeeDetails resolves the display name and contact email for a
// creator-facing listing. Missing profiles fall back to the account
// email.
func (s *RSVPServiceImpl) attendeeDetails(userID string) (name, contactEmail string) {
	if profile, err := s.profileRepo.FindByUserID(userID); err == nil {
		name = profile.DisplayName
		contactEmail = profile.ContactEmail
	}
	if user, err := s.userRepo.FindByID(userID); err == nil {
		if contactEmail == "" {
			contactEmail = user.Email
		}
	}
	if name == "" {
		name = "Unknown"
	}
	return name, contactEmail
}

func (s *RSVPServiceImpl) afterRSVPCreated(event *models.Event, rsvp *models.RSVP) {
	name, contactEmail := s.attendeeDetails(rsvp.UserID)

	err := s.notifRepo.CreateNewRSVPNotification(
		event.CreatedBy, rsvp.UserID, event.ID, rsvp.ID, name, event.Title, rsvp.NumberOfSpots)
	if err != nil {
		logger.WithError(err).Warn("failed to create rsvp notification",
			"event_id", event.ID, "rsvp_id", rsvp.ID)
	}

	if contactEmail == "" {
		return
	}
	msg := &email.Message{
		To:      []string{contactEmail},
		Subject: fmt.Sprintf("Your ticket for %s", event.Title),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour RSVP for %s is confirmed.\n\nTicket: %s\nSpots: %d\n\nShow this ticket number at the door.\n",
			name, event.Title, rsvp.TicketNumber, rsvp.NumberOfSpots,
		),
	}
	if err := s.emailProvider.Send(msg); err != nil {
		logger.WithError(err).Warn("failed to send ticket email",
			"rsvp_id", rsvp.ID, "to", contactEmail)
	}
}

func toRSVPResponse(rsvp *models.RSVP) *dto.RSVPResponse {
	resp := &dto.RSVPResponse{
		ID:              rsvp.ID,
		EventID:         rsvp.EventID,
		UserID:          rsvp.UserID,
		NumberOfSpots:   rsvp.NumberOfSpots,
		Status:          rsvp.Status,
		PaymentStatus:   rsvp.PaymentStatus,
		TicketNumber:    rsvp.TicketNumber,
		ReferenceNumber: rsvp.ReferenceNumber,
		CancelledAt:     rsvp.CancelledAt,
		CreatedAt:       rsvp.CreatedAt,
	}
	for _, sel := range rsvp.DateSelections {
		resp.ScheduleIDs = append(resp.ScheduleIDs, sel.ScheduleSlotID)
	}
	return resp
}

// generateTicketNumber issues a human-readable "HPD-XXXXXXXX" ticket.
func generateTicketNumber() string {
	var b strings.Builder
	b.WriteString("HPD-")
	max := big.NewInt(int64(len(ticketAlphabet)))
	for i := 0; i < ticketLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a uuid-derived ticket rather than crash.
			return "HPD-" + strings.ToUpper(uuid.NewString()[:8])
		}
		b.WriteByte(ticketAlphabet[n.Int64()])
	}
	return b.String()
}

// generateReferenceNumber issues the opaque creator-facing reference.
func generateReferenceNumber() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

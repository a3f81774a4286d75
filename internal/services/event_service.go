package services

import (
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type EventService interface {
	CreateEvent(creatorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(idOrSlug, requesterID string) (*dto.EventResponse, error)
	ListPublished(criteria repositories.EventCriteria) (*dto.EventListResponse, error)
	ListMine(creatorID string) ([]dto.EventResponse, error)
	UpdateEvent(eventID, requesterID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	PublishEvent(eventID, requesterID string) (*dto.EventResponse, error)
	CancelEvent(eventID, requesterID string) (*dto.EventResponse, error)
}

type EventServiceImpl struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &EventServiceImpl{eventRepo: eventRepo}
}

func (s *EventServiceImpl) CreateEvent(creatorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := validateCapacity(req.TotalSpots, req.IsUnlimitedSpots); err != nil {
		return nil, err
	}

	maxPerPerson := req.MaxSpotsPerPerson
	if maxPerPerson < 1 {
		maxPerPerson = 1
	}

	event := &models.Event{
		Slug:              generateSlug(req.Title),
		CreatedBy:         creatorID,
		Title:             req.Title,
		Description:       req.Description,
		Status:            models.EventStatusDraft,
		TotalSpots:        req.TotalSpots,
		IsUnlimitedSpots:  req.IsUnlimitedSpots,
		MaxSpotsPerPerson: maxPerPerson,
		RSVPDeadline:      req.RSVPDeadline,
		IsPaid:            req.IsPaid,
		Venue:             req.Venue,
		City:              req.City,
	}

	slots := toScheduleSlots(req.ScheduleSlots)
	if err := s.eventRepo.CreateWithSlots(event, slots); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toEventResponse(event), nil
}

func (s *EventServiceImpl) GetEvent(idOrSlug, requesterID string) (*dto.EventResponse, error) {
	event, err := s.findEvent(idOrSlug)
	if err != nil {
		return nil, err
	}

	// Drafts and cancelled events are only visible to their creator.
	if event.Status != models.EventStatusPublished && event.CreatedBy != requesterID {
		return nil, apperrors.ErrNotFound(repositories.ErrEventNotFound, "Event not found")
	}

	return toEventResponse(event), nil
}

func (s *EventServiceImpl) ListPublished(criteria repositories.EventCriteria) (*dto.EventListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	events, total, err := s.eventRepo.ListPublished(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.EventListResponse{
		Events:   make([]dto.EventResponse, 0, len(events)),
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range events {
		resp.Events = append(resp.Events, *toEventResponse(&events[i]))
	}
	return resp, nil
}

func (s *EventServiceImpl) ListMine(creatorID string) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *toEventResponse(&events[i]))
	}
	return out, nil
}

func (s *EventServiceImpl) UpdateEvent(eventID, requesterID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.findOwnedEvent(eventID, requesterID)
	if err != nil {
		return nil, err
	}

	if event.Status == models.EventStatusCancelled {
		return nil, apperrors.ErrInvalidOperation("event", "Cancelled events cannot be edited")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.TotalSpots != nil {
		event.TotalSpots = req.TotalSpots
	}
	if req.IsUnlimitedSpots != nil {
		event.IsUnlimitedSpots = *req.IsUnlimitedSpots
	}
	if req.MaxSpotsPerPerson != nil {
		event.MaxSpotsPerPerson = *req.MaxSpotsPerPerson
	}
	if req.RSVPDeadline != nil {
		event.RSVPDeadline = req.RSVPDeadline
	}
	if req.IsPaid != nil {
		event.IsPaid = *req.IsPaid
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.City != nil {
		event.City = *req.City
	}

	if err := validateCapacity(event.TotalSpots, event.IsUnlimitedSpots); err != nil {
		return nil, err
	}

	// Slot replacement and field update happen in one transaction so a
	// failed replace never leaves the event half-updated.
	if req.ScheduleSlots != nil {
		slots := toScheduleSlots(req.ScheduleSlots)
		if err := s.eventRepo.UpdateWithSlots(event, slots); err != nil {
			return nil, apperrors.InternalError(err)
		}
	} else {
		if err := s.eventRepo.Update(event); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return toEventResponse(event), nil
}

func (s *EventServiceImpl) PublishEvent(eventID, requesterID string) (*dto.EventResponse, error) {
	event, err := s.findOwnedEvent(eventID, requesterID)
	if err != nil {
		return nil, err
	}

	switch event.Status {
	case models.EventStatusPublished:
		return toEventResponse(event), nil
	case models.EventStatusCancelled:
		return nil, apperrors.ErrInvalidOperation("event", "Cancelled events cannot be published")
	}

	event.Status = models.EventStatusPublished
	if err := s.eventRepo.Update(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toEventResponse(event), nil
}

func (s *EventServiceImpl) CancelEvent(eventID, requesterID string) (*dto.EventResponse, error) {
	event, err := s.findOwnedEvent(eventID, requesterID)
	if err != nil {
		return nil, err
	}

	if event.Status == models.EventStatusCancelled {
		return toEventResponse(event), nil
	}

	event.Status = models.EventStatusCancelled
	if err := s.eventRepo.Update(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toEventResponse(event), nil
}

func (s *EventServiceImpl) findEvent(idOrSlug string) (*models.Event, error) {
	var event *models.Event
	var err error
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		event, err = s.eventRepo.FindByID(idOrSlug)
	} else {
		event, err = s.eventRepo.FindBySlug(idOrSlug)
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err, "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *EventServiceImpl) findOwnedEvent(eventID, requesterID string) (*models.Event, error) {
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

func validateCapacity(totalSpots *int, unlimited bool) error {
	if unlimited {
		return nil
	}
	if totalSpots == nil || *totalSpots < 1 {
		return apperrors.ErrInvalidOperation("event", "Provide total spots or mark the event as unlimited")
	}
	return nil
}

func toScheduleSlots(inputs []dto.ScheduleSlotInput) []models.ScheduleSlot {
	slots := make([]models.ScheduleSlot, 0, len(inputs))
	for i, in := range inputs {
		slots = append(slots, models.ScheduleSlot{
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Timezone:  in.Timezone,
			SortOrder: i,
		})
	}
	return slots
}

func toEventResponse(event *models.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:                event.ID,
		Slug:              event.Slug,
		CreatedBy:         event.CreatedBy,
		Title:             event.Title,
		Description:       event.Description,
		Status:            event.Status,
		TotalSpots:        event.TotalSpots,
		IsUnlimitedSpots:  event.IsUnlimitedSpots,
		MaxSpotsPerPerson: event.MaxSpotsPerPerson,
		RSVPDeadline:      event.RSVPDeadline,
		IsPaid:            event.IsPaid,
		Venue:             event.Venue,
		City:              event.City,
		ScheduleSlots:     make([]dto.ScheduleSlotResponse, 0, len(event.ScheduleSlots)),
		CreatedAt:         event.CreatedAt,
	}
	for _, slot := range event.ScheduleSlots {
		resp.ScheduleSlots = append(resp.ScheduleSlots, dto.ScheduleSlotResponse{
			ID:        slot.ID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Timezone:  slot.Timezone,
			SortOrder: slot.SortOrder,
		})
	}
	return resp
}

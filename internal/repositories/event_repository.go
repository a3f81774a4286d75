package repositories

import (
	"errors"

	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// EventCriteria filters the public "what's on" listing.
type EventCriteria struct {
	City     string `form:"city"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type EventRepository interface {
	// CreateWithSlots inserts the event and its schedule slots atomically.
	CreateWithSlots(event *models.Event, slots []models.ScheduleSlot) error
	FindByID(id string) (*models.Event, error)
	FindBySlug(slug string) (*models.Event, error)
	Update(event *models.Event) error
	// UpdateWithSlots replaces the event's schedule slots together with
	// the field update in one transaction.
	UpdateWithSlots(event *models.Event, slots []models.ScheduleSlot) error
	ListPublished(criteria EventCriteria) ([]models.Event, int64, error)
	ListByCreator(creatorID string) ([]models.Event, error)
	FindSlots(eventID string) ([]models.ScheduleSlot, error)
}

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) CreateWithSlots(event *models.Event, slots []models.ScheduleSlot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].EventID = event.ID
			slots[i].SortOrder = i
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		event.ScheduleSlots = slots
		return nil
	})
}

func (r *EventRepositoryImpl) FindByID(id string) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindBySlug(slug string) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&event, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Update(event *models.Event) error {
	return r.db.Omit("ScheduleSlots").Save(event).Error
}

func (r *EventRepositoryImpl) UpdateWithSlots(event *models.Event, slots []models.ScheduleSlot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ScheduleSlots").Save(event).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.ScheduleSlot{}).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ID = ""
			slots[i].EventID = event.ID
			slots[i].SortOrder = i
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		event.ScheduleSlots = slots
		return nil
	})
}

func (r *EventRepositoryImpl) ListPublished(criteria EventCriteria) ([]models.Event, int64, error) {
	var events []models.Event
	query := r.db.Model(&models.Event{}).Where("status = ?", models.EventStatusPublished)

	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error

	return events, total, err
}

func (r *EventRepositoryImpl) ListByCreator(creatorID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("ScheduleSlots").
		Where("created_by = ?", creatorID).
		Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) FindSlots(eventID string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.Where("event_id = ?", eventID).Order("sort_order ASC").Find(&slots).Error
	return slots, err
}

package repositories

import (
	"errors"
	"fmt"
	"time"

	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRSVPNotFound         = errors.New("rsvp not found")
	ErrRSVPAlreadyCancelled = errors.New("rsvp already cancelled")
	ErrInvalidScheduleSlots = errors.New("one or more schedule slots do not belong to this event")
)

// ErrInsufficientCapacity reports how many spots were left at the time
// the reservation was rejected.
type ErrInsufficientCapacity struct {
	Available int
}

func (e *ErrInsufficientCapacity) Error() string {
	return fmt.Sprintf("only %d spots available", e.Available)
}

// RSVPCriteria filters the creator-facing RSVP listing.
type RSVPCriteria struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type RSVPRepository interface {
	// CreateWithCapacityCheck inserts the RSVP and its date selections in
	// one transaction. The event row is locked and the confirmed-spot sum
	// recounted inside the transaction, so concurrent reservations cannot
	// jointly overbook the event.
	CreateWithCapacityCheck(rsvp *models.RSVP, slotIDs []string) error
	FindByID(id string) (*models.RSVP, error)
	FindConfirmedByEventAndUser(eventID, userID string) (*models.RSVP, error)
	FindLatestByEventAndUser(eventID, userID string) (*models.RSVP, error)
	// Cancel soft-transitions the RSVP to cancelled. The row is kept.
	Cancel(id string) error
	ListByEvent(eventID string, criteria RSVPCriteria) ([]models.RSVP, int64, error)
	ListByUser(userID string) ([]models.RSVP, error)
	Summary(eventID string) (*models.RSVPSummary, error)
	SumConfirmedSpots(eventID string) (int64, error)
}

type RSVPRepositoryImpl struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &RSVPRepositoryImpl{db: db}
}

func (r *RSVPRepositoryImpl) CreateWithCapacityCheck(rsvp *models.RSVP, slotIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Lock the event row for the duration of the capacity check and
		// insert. Concurrent transactions serialize here.
		var event models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", rsvp.EventID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if !event.IsUnlimitedSpots {
			total := 0
			if event.TotalSpots != nil {
				total = *event.TotalSpots
			}

			var booked int64
			err = tx.Model(&models.RSVP{}).
				Where("event_id = ? AND status = ?", rsvp.EventID, models.RSVPStatusConfirmed).
				Select("COALESCE(SUM(number_of_spots), 0)").Scan(&booked).Error
			if err != nil {
				return err
			}

			available := total - int(booked)
			if available < 0 {
				available = 0
			}
			if rsvp.NumberOfSpots > available {
				return &ErrInsufficientCapacity{Available: available}
			}
		}

		if len(slotIDs) > 0 {
			var count int64
			err = tx.Model(&models.ScheduleSlot{}).
				Where("event_id = ? AND id IN ?", rsvp.EventID, slotIDs).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count != int64(len(slotIDs)) {
				return ErrInvalidScheduleSlots
			}
		}

		if err := tx.Create(rsvp).Error; err != nil {
			return err
		}

		selections := make([]models.RSVPDateSelection, 0, len(slotIDs))
		for _, slotID := range slotIDs {
			selections = append(selections, models.RSVPDateSelection{
				RSVPID:         rsvp.ID,
				ScheduleSlotID: slotID,
			})
		}
		if len(selections) > 0 {
			if err := tx.Create(&selections).Error; err != nil {
				return err
			}
			rsvp.DateSelections = selections
		}

		return nil
	})
}

func (r *RSVPRepositoryImpl) FindByID(id string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.Preload("DateSelections").First(&rsvp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepositoryImpl) FindConfirmedByEventAndUser(eventID, userID string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.First(&rsvp, "event_id = ? AND user_id = ? AND status = ?",
		eventID, userID, models.RSVPStatusConfirmed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepositoryImpl) FindLatestByEventAndUser(eventID, userID string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Order("created_at DESC").First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepositoryImpl) Cancel(id string) error {
	now := time.Now()
	result := r.db.Model(&models.RSVP{}).
		Where("id = ? AND status <> ?", id, models.RSVPStatusCancelled).
		Updates(map[string]interface{}{
			"status":       models.RSVPStatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either missing or already cancelled; distinguish for the caller.
		var count int64
		if err := r.db.Model(&models.RSVP{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRSVPNotFound
		}
		return ErrRSVPAlreadyCancelled
	}
	return nil
}

func (r *RSVPRepositoryImpl) ListByEvent(eventID string, criteria RSVPCriteria) ([]models.RSVP, int64, error) {
	var rsvps []models.RSVP
	query := r.db.Model(&models.RSVP{}).Where("event_id = ?", eventID)

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.PaymentStatus != "" {
		query = query.Where("payment_status = ?", criteria.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("DateSelections").Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rsvps).Error

	return rsvps, total, err
}

func (r *RSVPRepositoryImpl) ListByUser(userID string) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.Preload("DateSelections").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&rsvps).Error
	return rsvps, err
}

func (r *RSVPRepositoryImpl) Summary(eventID string) (*models.RSVPSummary, error) {
	var summary models.RSVPSummary

	var statusRows []struct {
		Status models.RSVPStatus
		Count  int64
	}
	err := r.db.Model(&models.RSVP{}).Where("event_id = ?", eventID).
		Select("status, COUNT(*) as count").Group("status").Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		switch row.Status {
		case models.RSVPStatusConfirmed:
			summary.Confirmed = row.Count
		case models.RSVPStatusCancelled:
			summary.Cancelled = row.Count
		case models.RSVPStatusWaitlist:
			summary.Waitlist = row.Count
		}
	}

	var payRows []struct {
		PaymentStatus models.PaymentStatus
		Count         int64
	}
	err = r.db.Model(&models.RSVP{}).
		Where("event_id = ? AND status = ?", eventID, models.RSVPStatusConfirmed).
		Select("payment_status, COUNT(*) as count").Group("payment_status").Scan(&payRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range payRows {
		switch row.PaymentStatus {
		case models.PaymentStatusPaid:
			summary.Paid = row.Count
		case models.PaymentStatusUnpaid:
			summary.Unpaid = row.Count
		}
	}

	booked, err := r.SumConfirmedSpots(eventID)
	if err != nil {
		return nil, err
	}
	summary.SpotsBooked = booked

	return &summary, nil
}

func (r *RSVPRepositoryImpl) SumConfirmedSpots(eventID string) (int64, error) {
	var booked int64
	err := r.db.Model(&models.RSVP{}).
		Where("event_id = ? AND status = ?", eventID, models.RSVPStatusConfirmed).
		Select("COALESCE(SUM(number_of_spots), 0)").Scan(&booked).Error
	return booked, err
}

package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heyprodata_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification type constants
const (
	NotificationTypeNewApplication    = "new_application"
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeNewRSVP           = "new_rsvp"
	NotificationTypeRSVPCancelled     = "rsvp_cancelled"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	DeleteReadOlderThan(cutoff time.Time) (int64, error)

	// Factory helpers for the notification types the workflows emit.
	CreateNewApplicationNotification(creatorID, actorID, gigID, applicationID, applicantName, gigTitle string) error
	CreateApplicationStatusNotification(applicantID, actorID, gigID string, gigTitle string, status models.ApplicationStatus) error
	CreateNewRSVPNotification(creatorID, actorID, eventID, rsvpID, attendeeName, eventTitle string, spots int) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// NotificationCriteria filters a user's notification listing.
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}
	if notification.Type == "" {
		return errors.New("notification type is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Factory helpers

func (r *NotificationRepositoryImpl) CreateNewApplicationNotification(creatorID, actorID, gigID, applicationID, applicantName, gigTitle string) error {
	data, err := json.Marshal(map[string]interface{}{
		"gig_id":         gigID,
		"application_id": applicationID,
	})
	if err != nil {
		return err
	}

	return r.Create(&models.Notification{
		UserID:  creatorID,
		ActorID: &actorID,
		Type:    NotificationTypeNewApplication,
		Title:   "New application",
		Message: fmt.Sprintf("%s applied to your gig '%s'", applicantName, gigTitle),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateApplicationStatusNotification(applicantID, actorID, gigID, gigTitle string, status models.ApplicationStatus) error {
	var title, message string
	switch status {
	case models.ApplicationStatusShortlisted:
		title = "You've been shortlisted"
		message = fmt.Sprintf("Your application for '%s' was shortlisted", gigTitle)
	case models.ApplicationStatusConfirmed:
		title = "Application confirmed"
		message = fmt.Sprintf("Your application for '%s' was confirmed", gigTitle)
	case models.ApplicationStatusReleased:
		title = "Application released"
		message = fmt.Sprintf("You have been released from '%s'", gigTitle)
	default:
		return fmt.Errorf("unsupported status for notification: %s", status)
	}

	data, err := json.Marshal(map[string]interface{}{"gig_id": gigID})
	if err != nil {
		return err
	}

	return r.Create(&models.Notification{
		UserID:  applicantID,
		ActorID: &actorID,
		Type:    NotificationTypeApplicationStatus,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateNewRSVPNotification(creatorID, actorID, eventID, rsvpID, attendeeName, eventTitle string, spots int) error {
	data, err := json.Marshal(map[string]interface{}{
		"event_id": eventID,
		"rsvp_id":  rsvpID,
	})
	if err != nil {
		return err
	}

	return r.Create(&models.Notification{
		UserID:  creatorID,
		ActorID: &actorID,
		Type:    NotificationTypeNewRSVP,
		Title:   "New RSVP",
		Message: fmt.Sprintf("%s reserved %d spot(s) for '%s'", attendeeName, spots, eventTitle),
		Data:    datatypes.JSON(data),
	})
}

package services

import (
	"net/http"
	"testing"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationList(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	require.NoError(t, repo.CreateNewApplicationNotification(creatorID, applicantID, "gig-1", "app-1", "Ada", "Editorial shoot"))
	require.NoError(t, repo.CreateNewApplicationNotification(creatorID, applicantID, "gig-1", "app-2", "Ben", "Editorial shoot"))

	resp, err := svc.List(creatorID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, int64(2), resp.UnreadCount)

	// Other users see nothing.
	resp, err = svc.List(applicantID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Empty(t, resp.Notifications)
	assert.Zero(t, resp.UnreadCount)
}

func TestNotificationMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	require.NoError(t, repo.Create(&models.Notification{UserID: creatorID, Type: "new_application", Title: "New application"}))
	id := repo.notifications[0].ID

	// Only the recipient can mark it read.
	err := svc.MarkRead(id, applicantID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))

	require.NoError(t, svc.MarkRead(id, creatorID))

	count, err := svc.UnreadCount(creatorID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Notification{UserID: creatorID, Type: "new_rsvp", Title: "New RSVP"}))
	}

	require.NoError(t, svc.MarkAllRead(creatorID))

	count, err := svc.UnreadCount(creatorID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Unread-only listing is now empty.
	resp, err := svc.List(creatorID, repositories.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, resp.Notifications)
	assert.Zero(t, resp.Total)
}

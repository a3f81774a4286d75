package services

import (
	"net/http"
	"testing"
	"time"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventService(t *testing.T) (EventService, *fakeEventRepo) {
	t.Helper()
	repo := newFakeEventRepo()
	return NewEventService(repo), repo
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func eventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:             "Portfolio Review Night",
		Description:       "Bring prints.",
		TotalSpots:        intPtr(20),
		MaxSpotsPerPerson: 2,
		Venue:             "Studio B",
		City:              "Hamburg",
		ScheduleSlots: []dto.ScheduleSlotInput{
			{Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), StartTime: "19:00", EndTime: "22:00", Timezone: "Europe/Berlin"},
			{Date: time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), StartTime: "19:00", EndTime: "22:00", Timezone: "Europe/Berlin"},
		},
	}
}

func TestCreateEvent(t *testing.T) {
	svc, _ := newEventService(t)

	resp, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	assert.Equal(t, models.EventStatusDraft, resp.Status)
	assert.Contains(t, resp.Slug, "portfolio-review-night")
	require.Len(t, resp.ScheduleSlots, 2)
	assert.Equal(t, 0, resp.ScheduleSlots[0].SortOrder)
	assert.Equal(t, 1, resp.ScheduleSlots[1].SortOrder)
}

func TestCreateEventDefaultsMaxSpotsPerPerson(t *testing.T) {
	svc, _ := newEventService(t)

	req := eventRequest()
	req.MaxSpotsPerPerson = 0
	resp, err := svc.CreateEvent(hostID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MaxSpotsPerPerson)
}

func TestCreateEventWithoutCapacityRejected(t *testing.T) {
	svc, _ := newEventService(t)

	req := eventRequest()
	req.TotalSpots = nil
	req.IsUnlimitedSpots = false
	_, err := svc.CreateEvent(hostID, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	// Unlimited events do not need a spot count.
	req.IsUnlimitedSpots = true
	_, err = svc.CreateEvent(hostID, req)
	require.NoError(t, err)
}

func TestGetEventHidesDraftsFromOthers(t *testing.T) {
	svc, _ := newEventService(t)

	created, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	// The creator sees their draft, by ID and by slug.
	resp, err := svc.GetEvent(created.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	_, err = svc.GetEvent(created.Slug, hostID)
	require.NoError(t, err)

	// Everyone else gets a 404, not a 403, so the event's existence is
	// not leaked.
	_, err = svc.GetEvent(created.ID, aliceID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestPublishEvent(t *testing.T) {
	svc, _ := newEventService(t)

	created, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	_, err = svc.PublishEvent(created.ID, aliceID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	resp, err := svc.PublishEvent(created.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPublished, resp.Status)

	// Publishing again is a no-op.
	resp, err = svc.PublishEvent(created.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPublished, resp.Status)
}

func TestCancelledEventStaysCancelled(t *testing.T) {
	svc, _ := newEventService(t)

	created, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	resp, err := svc.CancelEvent(created.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, resp.Status)

	// Cancelling again is a no-op.
	_, err = svc.CancelEvent(created.ID, hostID)
	require.NoError(t, err)

	// But a cancelled event cannot be published or edited.
	_, err = svc.PublishEvent(created.ID, hostID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = svc.UpdateEvent(created.ID, hostID, &dto.UpdateEventRequest{Title: strPtr("New title")})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestUpdateEventReplacesSlots(t *testing.T) {
	svc, repo := newEventService(t)

	created, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)
	require.Len(t, created.ScheduleSlots, 2)

	resp, err := svc.UpdateEvent(created.ID, hostID, &dto.UpdateEventRequest{
		ScheduleSlots: []dto.ScheduleSlotInput{
			{Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), StartTime: "20:00", EndTime: "23:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.ScheduleSlots, 1)
	assert.Equal(t, "20:00", resp.ScheduleSlots[0].StartTime)

	slots, err := repo.FindSlots(created.ID)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestUpdateEventPatchesFields(t *testing.T) {
	svc, _ := newEventService(t)

	created, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	resp, err := svc.UpdateEvent(created.ID, hostID, &dto.UpdateEventRequest{
		Title:      strPtr("Portfolio Review Night vol. 2"),
		TotalSpots: intPtr(30),
		IsPaid:     boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Review Night vol. 2", resp.Title)
	assert.Equal(t, 30, *resp.TotalSpots)
	assert.True(t, resp.IsPaid)
	// Untouched fields keep their values.
	assert.Equal(t, "Studio B", resp.Venue)
	assert.Len(t, resp.ScheduleSlots, 2)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	svc, _ := newEventService(t)

	draft, err := svc.CreateEvent(hostID, eventRequest())
	require.NoError(t, err)

	req := eventRequest()
	req.Title = "Open Call Meetup"
	published, err := svc.CreateEvent(hostID, req)
	require.NoError(t, err)
	_, err = svc.PublishEvent(published.ID, hostID)
	require.NoError(t, err)

	resp, err := svc.ListPublished(repositories.EventCriteria{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, published.ID, resp.Events[0].ID)
	assert.NotEqual(t, draft.ID, resp.Events[0].ID)

	mine, err := svc.ListMine(hostID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

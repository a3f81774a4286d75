package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGigAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	gig := &Gig{Status: GigStatusActive}
	assert.True(t, gig.AcceptsApplications(now))

	gig.ExpiresAt = &future
	assert.True(t, gig.AcceptsApplications(now))

	gig.ExpiresAt = &past
	assert.False(t, gig.AcceptsApplications(now))

	gig = &Gig{Status: GigStatusClosed, ExpiresAt: &future}
	assert.False(t, gig.AcceptsApplications(now))

	gig = &Gig{Status: GigStatusExpired}
	assert.False(t, gig.AcceptsApplications(now))
}

func TestEventRSVPOpen(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	event := &Event{Status: EventStatusPublished}
	assert.True(t, event.RSVPOpen(now))

	event.RSVPDeadline = &future
	assert.True(t, event.RSVPOpen(now))

	event.RSVPDeadline = &past
	assert.False(t, event.RSVPOpen(now))

	assert.False(t, (&Event{Status: EventStatusDraft}).RSVPOpen(now))
	assert.False(t, (&Event{Status: EventStatusCancelled}).RSVPOpen(now))
}

func TestProfileIsComplete(t *testing.T) {
	complete := &Profile{
		DisplayName: "Ada",
		Discipline:  "photographer",
		City:        "Berlin",
		Bio:         "Editorial work.",
	}
	assert.True(t, complete.IsComplete())

	for _, blank := range []func(*Profile){
		func(p *Profile) { p.DisplayName = "" },
		func(p *Profile) { p.Discipline = "" },
		func(p *Profile) { p.City = "" },
		func(p *Profile) { p.Bio = "" },
	} {
		p := *complete
		blank(&p)
		assert.False(t, p.IsComplete())
	}
}

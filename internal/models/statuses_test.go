package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidApplicationStatus(t *testing.T) {
	for _, s := range []ApplicationStatus{
		ApplicationStatusPending,
		ApplicationStatusShortlisted,
		ApplicationStatusConfirmed,
		ApplicationStatusReleased,
	} {
		assert.True(t, ValidApplicationStatus(s), "expected %q to be valid", s)
	}

	assert.False(t, ValidApplicationStatus("withdrawn"))
	assert.False(t, ValidApplicationStatus(""))
	assert.False(t, ValidApplicationStatus("PENDING"))
}

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationStatusPending, ApplicationStatusShortlisted, true},
		{ApplicationStatusPending, ApplicationStatusConfirmed, true},
		{ApplicationStatusPending, ApplicationStatusReleased, true},
		{ApplicationStatusShortlisted, ApplicationStatusConfirmed, true},
		{ApplicationStatusShortlisted, ApplicationStatusReleased, true},
		{ApplicationStatusConfirmed, ApplicationStatusReleased, true},

		// No going backwards.
		{ApplicationStatusShortlisted, ApplicationStatusPending, false},
		{ApplicationStatusConfirmed, ApplicationStatusPending, false},
		{ApplicationStatusConfirmed, ApplicationStatusShortlisted, false},

		// Released is terminal.
		{ApplicationStatusReleased, ApplicationStatusPending, false},
		{ApplicationStatusReleased, ApplicationStatusShortlisted, false},
		{ApplicationStatusReleased, ApplicationStatusConfirmed, false},
	}

	for _, tt := range tests {
		got := CanTransitionApplication(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestCanTransitionApplicationSameStatus(t *testing.T) {
	for _, s := range []ApplicationStatus{
		ApplicationStatusPending,
		ApplicationStatusShortlisted,
		ApplicationStatusConfirmed,
		ApplicationStatusReleased,
	} {
		assert.True(t, CanTransitionApplication(s, s), "%s -> %s should be a no-op", s, s)
	}
}

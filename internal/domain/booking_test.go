package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitions(t *testing.T) {
	assert.Equal(t, []Action{ActionApprove, ActionArchive}, Transitions(StatusPending))
	assert.Equal(t, []Action{ActionArchive}, Transitions(StatusConfirmed))
	assert.Equal(t, []Action{ActionApprove}, Transitions(StatusArchived))
}

func TestApproveDoesNotMutate(t *testing.T) {
	b := BookingRequest{ID: "abc123", Status: StatusPending}

	got := Approve(b)

	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "abc123", got.ID)
}

func TestArchiveFromAnyState(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		got := Archive(BookingRequest{Status: s})
		assert.Equal(t, StatusArchived, got.Status)
	}
}

func TestApplyUnknownAction(t *testing.T) {
	b := BookingRequest{Status: StatusPending}

	got, ok := Apply(b, Action("delete"))

	require.False(t, ok)
	assert.Equal(t, b, got)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusConfirmed))
	assert.True(t, ValidStatus(StatusArchived))
	assert.False(t, ValidStatus(Status("cancelled")))
}

func TestValidEventType(t *testing.T) {
	assert.True(t, ValidEventType(EventWedding))
	assert.True(t, ValidEventType(EventOther))
	assert.False(t, ValidEventType(EventType("Concert")))
}

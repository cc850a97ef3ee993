package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/event", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.EventItem{{ID: "1", Title: "Art Week"}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	events, err := c.ListEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Art Week", events[0].Title)
}

func TestCreateBookingPostsPayload(t *testing.T) {
	var got domain.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/booking/create_booking", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		got.ID = "srv-1"
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	created, err := c.CreateBooking(context.Background(), domain.BookingRequest{
		Name:   "John Doe",
		Date:   "2024-07-01",
		Status: domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestUpdateBookingPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/booking/update_booking/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(domain.BookingRequest{ID: "abc123", Status: domain.StatusConfirmed})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	updated, err := c.UpdateBooking(context.Background(), "abc123", domain.BookingRequest{ID: "abc123"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestDeleteEventPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/event/delete_event/ev-9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	require.NoError(t, c.DeleteEvent(context.Background(), "ev-9"))
}

func TestLoginRejectedVsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Login(context.Background(), "admin@arkhive.com", "wrong")
	assert.ErrorIs(t, err, ErrRejected)

	srv.Close()

	_, err = c.Login(context.Background(), "admin@arkhive.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestServerErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.ListBookings(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}

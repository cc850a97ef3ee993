// Package client is a typed HTTP/JSON consumer of the venue data service.
// Every read is a fresh fetch: there is no caching, no retry and no
// cancellation beyond the caller's context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
)

// ErrRejected is returned when the service answered with a 4xx status, as
// opposed to being unreachable or broken. Login uses it to distinguish wrong
// credentials from transport failure.
var ErrRejected = errors.New("request rejected")

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListEvents fetches all scheduled events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.EventItem, error) {
	const op = "client.ListEvents"

	var out []domain.EventItem
	if err := c.do(ctx, http.MethodGet, "/api/event", nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateEvent submits a new event and returns the created record.
func (c *Client) CreateEvent(ctx context.Context, e domain.EventItem) (*domain.EventItem, error) {
	const op = "client.CreateEvent"

	var out domain.EventItem
	if err := c.do(ctx, http.MethodPost, "/api/event/create_event", e, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	const op = "client.DeleteEvent"

	if err := c.do(ctx, http.MethodDelete, "/api/event/delete_event/"+id, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListBookings fetches all booking requests.
func (c *Client) ListBookings(ctx context.Context) ([]domain.BookingRequest, error) {
	const op = "client.ListBookings"

	var out []domain.BookingRequest
	if err := c.do(ctx, http.MethodGet, "/api/booking", nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateBooking submits a booking request and returns the created record.
func (c *Client) CreateBooking(ctx context.Context, b domain.BookingRequest) (*domain.BookingRequest, error) {
	const op = "client.CreateBooking"

	var out domain.BookingRequest
	if err := c.do(ctx, http.MethodPost, "/api/booking/create_booking", b, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// UpdateBooking replaces the booking with the given id and returns the
// updated record.
func (c *Client) UpdateBooking(ctx context.Context, id string, b domain.BookingRequest) (*domain.BookingRequest, error) {
	const op = "client.UpdateBooking"

	var out domain.BookingRequest
	if err := c.do(ctx, http.MethodPut, "/api/booking/update_booking/"+id, b, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// DeleteBooking removes a booking by id.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	const op = "client.DeleteBooking"

	if err := c.do(ctx, http.MethodDelete, "/api/booking/delete_booking/"+id, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoginResult is the payload of a successful admin login.
type LoginResult struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// Login authenticates an operator. Wrong credentials return ErrRejected;
// transport failure returns the underlying error, so callers can tell the
// two apart.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "client.Login"

	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

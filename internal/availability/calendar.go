package availability

import (
	"context"
	"log/slog"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
)

// Snapshot is the slice of the remote data service the calendar reads.
type Snapshot interface {
	ListBookings(ctx context.Context) ([]domain.BookingRequest, error)
	ListEvents(ctx context.Context) ([]domain.EventItem, error)
}

// Calendar is the booking-availability widget: it shows one month at a time
// and re-fetches a fresh snapshot on every month change. There is no cache
// and no incremental update.
type Calendar struct {
	src    Snapshot
	logger *slog.Logger
	now    func() time.Time

	year   int
	month0 int
}

// NewCalendar starts a calendar on the month containing now().
func NewCalendar(src Snapshot, logger *slog.Logger) *Calendar {
	return newCalendar(src, logger, time.Now)
}

func newCalendar(src Snapshot, logger *slog.Logger, now func() time.Time) *Calendar {
	t := now()
	return &Calendar{
		src:    src,
		logger: logger,
		now:    now,
		year:   t.Year(),
		month0: int(t.Month()) - 1,
	}
}

// Current returns the displayed year and zero-based month index.
func (c *Calendar) Current() (year, month0 int) {
	return c.year, c.month0
}

// ChangeMonth moves the view by offset months. The move itself is a local
// state change; the caller renders via Render, which fetches fresh data.
func (c *Calendar) ChangeMonth(offset int) {
	t := time.Date(c.year, time.Month(c.month0+1+offset), 1, 0, 0, 0, 0, time.UTC)
	c.year = t.Year()
	c.month0 = int(t.Month()) - 1
}

// Render fetches a fresh snapshot and classifies the displayed month. A
// failed fetch degrades to an empty unavailable set rather than failing the
// view; the condition is logged and the returned month carries the Degraded
// flag so callers can tell the state is unknown.
func (c *Calendar) Render(ctx context.Context) Month {
	unavailable, err := c.fetchUnavailable(ctx)
	if err != nil {
		c.logger.Error("failed to fetch unavailable dates", "error", err)
		m := monthView(c.year, c.month0, c.now(), nil)
		m.Degraded = true
		return m
	}
	return monthView(c.year, c.month0, c.now(), unavailable)
}

func (c *Calendar) fetchUnavailable(ctx context.Context) (map[string]struct{}, error) {
	bookings, err := c.src.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	events, err := c.src.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return UnavailableDates(bookings, events), nil
}

// Select returns the intake-form query for the given day of the displayed
// month. Disabled days (past or unavailable) return ok=false and no query.
func (c *Calendar) Select(ctx context.Context, day int) (query string, ok bool) {
	m := c.Render(ctx)
	if !m.Selectable(day) {
		return "", false
	}
	return BookingQuery(m.Days[day-1].Date).Encode(), true
}

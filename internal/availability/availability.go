// Package availability classifies calendar days of a month as past,
// unavailable or open for booking, based on a fresh snapshot of bookings and
// events. The classification is a pure function of (today, bookings, events)
// plus the displayed month.
package availability

import (
	"fmt"
	"net/url"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
)

// DayKind is the classification of a single calendar day.
type DayKind string

const (
	DayPast        DayKind = "past"
	DayUnavailable DayKind = "unavailable"
	DayAvailable   DayKind = "available"
)

// Day is one classified day of a month view.
type Day struct {
	Date string  `json:"date"` // YYYY-MM-DD
	Num  int     `json:"day"`
	Kind DayKind `json:"kind"`
}

// Month is a fully classified calendar month.
type Month struct {
	Year   int   `json:"year"`
	Month0 int   `json:"month"` // zero-based month index
	Days   []Day `json:"days"`
	// Degraded is set when the month was rendered against an empty
	// unavailable set because the snapshot fetch failed. Days may then be
	// reported available while the true state is unknown.
	Degraded bool `json:"degraded,omitempty"`
}

// UnavailableDates is the union of the dates of all confirmed bookings and
// all scheduled events. Pending and archived bookings do not block a date.
func UnavailableDates(bookings []domain.BookingRequest, events []domain.EventItem) map[string]struct{} {
	out := make(map[string]struct{}, len(bookings)+len(events))
	for _, b := range bookings {
		if b.Status == domain.StatusConfirmed {
			out[b.Date] = struct{}{}
		}
	}
	for _, e := range events {
		out[e.Date] = struct{}{}
	}
	return out
}

// MonthView classifies every day of the given month. month0 is zero-based
// (0 = January). Each day is exactly one of past, unavailable or available;
// past wins over unavailable for days that are both.
func MonthView(year, month0 int, today time.Time, bookings []domain.BookingRequest, events []domain.EventItem) Month {
	return monthView(year, month0, today, UnavailableDates(bookings, events))
}

func monthView(year, month0 int, today time.Time, unavailable map[string]struct{}) Month {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayDay := DateOnly(today)

	m := Month{Year: year, Month0: month0, Days: make([]Day, 0, daysInMonth)}
	for d := 1; d <= daysInMonth; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month0+1, d)
		kind := DayAvailable
		if date < todayDay {
			kind = DayPast
		} else if _, ok := unavailable[date]; ok {
			kind = DayUnavailable
		}
		m.Days = append(m.Days, Day{Date: date, Num: d, Kind: kind})
	}
	return m
}

// Selectable reports whether the given day of the month can start a booking.
func (m Month) Selectable(day int) bool {
	if day < 1 || day > len(m.Days) {
		return false
	}
	return m.Days[day-1].Kind == DayAvailable
}

// BookingQuery encodes a selected date as the query string the intake form is
// navigated with.
func BookingQuery(date string) url.Values {
	return url.Values{"date": []string{date}}
}

// DateOnly formats t as YYYY-MM-DD, discarding the time of day.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// Package intake collects and submits a well-formed booking request. The
// form mirrors the public "Request Booking" page: required contact fields,
// an event-type selector with a reactive custom field, and a date fixed by
// calendar navigation.
package intake

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
)

// Submitter is the create-booking slice of the data service client.
type Submitter interface {
	CreateBooking(ctx context.Context, b domain.BookingRequest) (*domain.BookingRequest, error)
}

// ValidationError reports the first field that failed client-side checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// Form holds the current field values of the intake form. The date is seeded
// from calendar navigation and has no free setter: the input is fixed once
// navigated to.
type Form struct {
	Name            string
	Email           string
	Phone           string
	EventType       domain.EventType
	CustomEventType string
	Date            string
	Guests          int
	Notes           string

	submitted bool
}

// DefaultForm returns a blank form with event type Corporate and the date
// passed in via navigation (may be empty).
func DefaultForm(initialDate string) Form {
	return Form{
		EventType: domain.EventCorporate,
		Date:      initialDate,
	}
}

// FromQuery seeds a form from the navigation query produced by the calendar
// (booking?date=YYYY-MM-DD).
func FromQuery(q url.Values) Form {
	return DefaultForm(q.Get("date"))
}

// ParseGuests coerces free-text guest-count input to an integer; unparsable
// input falls back to 0, it never errors.
func ParseGuests(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetEventType changes the selected event type. Switching away from Other
// clears the custom field, matching the reactive toggle in the form.
func (f *Form) SetEventType(t domain.EventType) {
	f.EventType = t
	if t != domain.EventOther {
		f.CustomEventType = ""
	}
}

// NeedsCustomType reports whether the custom event-type field is shown and
// required.
func (f *Form) NeedsCustomType() bool {
	return f.EventType == domain.EventOther
}

// Validate applies the client-side required-field checks. today is compared
// date-only.
func (f *Form) Validate(today time.Time) error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if strings.TrimSpace(f.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "required"}
	}
	if !domain.ValidEventType(f.EventType) {
		return &ValidationError{Field: "eventType", Reason: "unknown event type"}
	}
	if f.EventType == domain.EventOther && strings.TrimSpace(f.CustomEventType) == "" {
		return &ValidationError{Field: "customEventType", Reason: "required for event type Other"}
	}
	if f.Date == "" {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if f.Date < today.Format("2006-01-02") {
		return &ValidationError{Field: "date", Reason: "must be today or later"}
	}
	if f.Guests <= 0 {
		return &ValidationError{Field: "guests", Reason: "must be a positive number"}
	}
	return nil
}

// Request assembles the booking request from the current field values with
// status forced to pending.
func (f *Form) Request() domain.BookingRequest {
	b := domain.BookingRequest{
		EventType: f.EventType,
		Date:      f.Date,
		Guests:    f.Guests,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Notes:     f.Notes,
		Status:    domain.StatusPending,
	}
	if f.EventType == domain.EventOther {
		b.CustomEventType = f.CustomEventType
	}
	return b
}

// Submit validates the form and hands the assembled request to the data
// service. The acknowledgment is gated on the call actually succeeding: a
// failed create is returned to the caller instead of being swallowed.
func (f *Form) Submit(ctx context.Context, svc Submitter) (*domain.BookingRequest, error) {
	const op = "intake.Submit"

	if err := f.Validate(time.Now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := svc.CreateBooking(ctx, f.Request())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f.submitted = true
	return created, nil
}

// Submitted reports whether the form is showing the acknowledgment view.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Reset returns the form to a blank state for a second inquiry.
func (f *Form) Reset() {
	*f = DefaultForm("")
}

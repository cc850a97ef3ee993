// Package moderation is the operator-facing workflow over bookings and
// events: status transitions for booking inquiries and create/delete for
// scheduled events. Every mutation fires a call to the data service and then
// refreshes the full list, so the visible state always re-reads truth from
// the service. A failed mutation therefore leaves the previous state visible
// after refresh; there is no optimistic local rollback.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/arkhive/arkhive-go/internal/media"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotConfirmed    = errors.New("deletion not confirmed")
)

// DataService is the slice of the remote data service the panel consumes.
type DataService interface {
	ListBookings(ctx context.Context) ([]domain.BookingRequest, error)
	UpdateBooking(ctx context.Context, id string, b domain.BookingRequest) (*domain.BookingRequest, error)
	ListEvents(ctx context.Context) ([]domain.EventItem, error)
	CreateEvent(ctx context.Context, e domain.EventItem) (*domain.EventItem, error)
	DeleteEvent(ctx context.Context, id string) error
}

// ImageUploader uploads an image and returns its hosted URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, img io.Reader) (string, error)
}

// Panel is the admin moderation surface. It holds only transient copies of
// the remote state; Refresh replaces them wholesale.
type Panel struct {
	svc      DataService
	uploader ImageUploader
	logger   *slog.Logger
	now      func() time.Time

	bookings []domain.BookingRequest
	events   []domain.EventItem
}

func NewPanel(svc DataService, uploader ImageUploader, logger *slog.Logger) *Panel {
	return &Panel{
		svc:      svc,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh re-reads bookings and events from the data service. Bookings are
// ordered newest-created first.
func (p *Panel) Refresh(ctx context.Context) error {
	const op = "moderation.Refresh"

	bookings, err := p.svc.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	events, err := p.svc.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt > bookings[j].CreatedAt
	})
	p.bookings = bookings
	p.events = events
	return nil
}

// Bookings returns the current booking list, newest first.
func (p *Panel) Bookings() []domain.BookingRequest {
	return p.bookings
}

// Events returns the current event list.
func (p *Panel) Events() []domain.EventItem {
	return p.events
}

// SelectBooking returns the booking with the given id for the read-only
// detail view, along with the transitions the view should offer.
func (p *Panel) SelectBooking(id string) (*domain.BookingRequest, []domain.Action, error) {
	for i := range p.bookings {
		if p.bookings[i].ID == id {
			b := p.bookings[i]
			return &b, domain.Transitions(b.Status), nil
		}
	}
	return nil, nil, ErrBookingNotFound
}

// Approve transitions the booking to confirmed: one update call, then a full
// refresh.
func (p *Panel) Approve(ctx context.Context, id string) error {
	return p.transition(ctx, id, domain.Approve)
}

// Archive transitions the booking to archived.
func (p *Panel) Archive(ctx context.Context, id string) error {
	return p.transition(ctx, id, domain.Archive)
}

func (p *Panel) transition(ctx context.Context, id string, fn func(domain.BookingRequest) domain.BookingRequest) error {
	const op = "moderation.transition"

	current, _, err := p.SelectBooking(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	updated := fn(*current)
	if _, err := p.svc.UpdateBooking(ctx, id, updated); err != nil {
		// The refresh below re-reads truth either way.
		p.logger.Error("booking update failed", "id", id, "error", err)
		if rerr := p.Refresh(ctx); rerr != nil {
			p.logger.Error("refresh after failed update failed", "error", rerr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return p.Refresh(ctx)
}

// EventInput is the operator-supplied part of a new event.
type EventInput struct {
	Title       string
	Date        string // YYYY-MM-DD, today or later
	Category    string
	Description string
	Link        string
	Price       string
	// ImageName and Image carry the optional selected file. A nil Image
	// means no file was selected and the placeholder URL is used.
	ImageName string
	Image     io.Reader
}

// AddEvent uploads the image (if any), assembles the event with a
// client-generated identifier and submits it, then refreshes the list.
// Upload and creation are sequential, not transactional: an upload failure
// means the create is never reached.
func (p *Panel) AddEvent(ctx context.Context, in EventInput) (*domain.EventItem, error) {
	const op = "moderation.AddEvent"

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%s: title is required", op)
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, err)
	}
	today := p.now()
	if date.Format("2006-01-02") < today.Format("2006-01-02") {
		return nil, fmt.Errorf("%s: date must be today or later", op)
	}

	imageURL := media.PlaceholderImage
	if in.Image != nil {
		imageURL, err = p.uploader.Upload(ctx, in.ImageName, in.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	category := in.Category
	if category == "" {
		category = "General"
	}
	price := in.Price
	if price == "" {
		price = "TBD"
	}

	event := domain.EventItem{
		ID:          strconv.FormatInt(p.now().UnixMilli(), 10),
		Title:       in.Title,
		Date:        in.Date,
		Category:    category,
		Description: in.Description,
		Link:        in.Link,
		Price:       price,
		Image:       imageURL,
	}

	created, err := p.svc.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := p.Refresh(ctx); err != nil {
		p.logger.Error("refresh after event create failed", "error", err)
	}
	return created, nil
}

// DeleteEvent removes an event after explicit operator confirmation. When
// confirm returns false the call is a no-op.
func (p *Panel) DeleteEvent(ctx context.Context, id string, confirm func() bool) error {
	const op = "moderation.DeleteEvent"

	if confirm == nil || !confirm() {
		return ErrNotConfirmed
	}

	if err := p.svc.DeleteEvent(ctx, id); err != nil {
		if rerr := p.Refresh(ctx); rerr != nil {
			p.logger.Error("refresh after failed delete failed", "error", rerr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return p.Refresh(ctx)
}

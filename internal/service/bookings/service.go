package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/arkhive/arkhive-go/internal/repository"
	postgresrepo "github.com/arkhive/arkhive-go/internal/repository/postgres"
	redisrepo "github.com/arkhive/arkhive-go/internal/repository/redis"
	"github.com/arkhive/arkhive-go/internal/uow"
	"github.com/google/uuid"
)

type Config struct {
	ListTTL time.Duration
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisrepo.DataPubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.DataPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 15 * time.Second
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

// List returns all booking requests in creation order through a short-TTL
// cache.
func (s *Service) List(ctx context.Context) ([]domain.BookingRequest, error) {
	const op = "service.bookings.List"

	list, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyBookingList(),
		s.cfg.ListTTL,
		func(ctx context.Context) ([]domain.BookingRequest, error) {
			return s.store.Bookings().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// Create persists a new booking request. The server owns the identifier, the
// creation timestamp and the initial status: whatever the client submitted,
// the stored record starts out pending. rlKey identifies the submitter for
// rate limiting (empty disables the check).
func (s *Service) Create(ctx context.Context, b domain.BookingRequest, rlKey string) (*domain.BookingRequest, error) {
	const op = "service.bookings.Create"

	if err := validate(b); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.limiter != nil && rlKey != "" {
		allowed, _, _, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}

	now := time.Now().UTC()
	b.ID = uuid.New().String()
	b.CreatedAt = now.Format(time.RFC3339)
	b.Status = domain.StatusPending

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Bookings().With(tx).Create(ctx, b, now); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateBookings(ctx)
			_ = s.pubsub.PublishBookingChanged(ctx, b.ID)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Update replaces the stored booking wholesale, keeping the original id and
// creation timestamp.
func (s *Service) Update(ctx context.Context, id string, b domain.BookingRequest) (*domain.BookingRequest, error) {
	const op = "service.bookings.Update"

	if !domain.ValidStatus(b.Status) {
		return nil, fmt.Errorf("%s: %w: unknown status %q", op, ErrInvalidBooking, b.Status)
	}

	var updated *domain.BookingRequest
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.store.Bookings().With(tx)

		if err := repo.Update(ctx, id, b); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		got, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		updated = got

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateBookings(ctx)
			_ = s.pubsub.PublishBookingChanged(ctx, id)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a booking by id. The admin panel never exercises this; it
// exists for completeness of the collaborator interface.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service.bookings.Delete"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Bookings().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateBookings(ctx)
			_ = s.pubsub.PublishBookingChanged(ctx, id)
		})
		return nil
	})

	return err
}

func validate(b domain.BookingRequest) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidBooking)
	}
	if !domain.ValidEventType(b.EventType) {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidBooking, b.EventType)
	}
	if b.EventType == domain.EventOther && strings.TrimSpace(b.CustomEventType) == "" {
		return fmt.Errorf("%w: custom event type is required", ErrInvalidBooking)
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if b.Guests <= 0 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidBooking)
	}
	return nil
}

package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/arkhive/arkhive-go/internal/repository"
	postgresrepo "github.com/arkhive/arkhive-go/internal/repository/postgres"
	redisrepo "github.com/arkhive/arkhive-go/internal/repository/redis"
	"github.com/arkhive/arkhive-go/internal/uow"
)

type Config struct {
	ListTTL time.Duration
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.DataPubSub
	uow    *uow.UoW
	cfg    Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub *redisrepo.DataPubSub, cfg Config) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 30 * time.Second
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
	}
}

// List returns all scheduled events through a short-TTL cache.
func (s *Service) List(ctx context.Context) ([]domain.EventItem, error) {
	const op = "service.events.List"

	list, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyEventList(),
		s.cfg.ListTTL,
		func(ctx context.Context) ([]domain.EventItem, error) {
			return s.store.Events().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// Create persists a new event. The identifier is client-generated; a missing
// one is assigned from the current time the same way the admin panel does.
func (s *Service) Create(ctx context.Context, e domain.EventItem) (*domain.EventItem, error) {
	const op = "service.events.Create"

	if e.ID == "" {
		e.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Events().With(tx).Create(ctx, e); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrEventConflict)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateEvents(ctx)
			_ = s.pubsub.PublishEventChanged(ctx, e.ID)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// Delete removes an event by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service.events.Delete"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Events().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrEventNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateEvents(ctx)
			_ = s.pubsub.PublishEventChanged(ctx, id)
		})
		return nil
	})

	return err
}

package service

import (
	postgres "github.com/arkhive/arkhive-go/internal/repository/postgres"
	redis "github.com/arkhive/arkhive-go/internal/repository/redis"
	"github.com/arkhive/arkhive-go/internal/service/auth"
	"github.com/arkhive/arkhive-go/internal/service/bookings"
	"github.com/arkhive/arkhive-go/internal/service/events"
)

type Services struct {
	Events   *events.Service
	Bookings *bookings.Service
	Auth     *auth.Service
}

type Config struct {
	Events   events.Config
	Bookings bookings.Config
	Auth     auth.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.DataPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Events:   events.New(store, cache, pubsub, cfg.Events),
		Bookings: bookings.New(store, cache, pubsub, limiter, cfg.Bookings),
		Auth:     auth.New(store.Admins(), cfg.Auth),
	}
}

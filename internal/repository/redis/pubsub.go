package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DataPubSub broadcasts change notifications after committed mutations so
// other processes (or a future live view) can refresh.
type DataPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewDataPubSub(rdb *redis.Client) *DataPubSub {
	return &DataPubSub{
		rdb:     rdb,
		channel: ChannelDataChanged(),
	}
}

type changedMsg struct {
	Kind   string `json:"kind"` // "event" or "booking"
	ID     string `json:"id"`
	TsUnix int64  `json:"ts_unix"`
}

func (p *DataPubSub) PublishEventChanged(ctx context.Context, id string) error {
	return p.publish(ctx, changedMsg{Kind: "event", ID: id, TsUnix: time.Now().Unix()})
}

func (p *DataPubSub) PublishBookingChanged(ctx context.Context, id string) error {
	return p.publish(ctx, changedMsg{Kind: "booking", ID: id, TsUnix: time.Now().Unix()})
}

func (p *DataPubSub) publish(ctx context.Context, msg changedMsg) error {
	b, _ := json.Marshal(msg)
	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe delivers change notifications until ctx is cancelled.
func (p *DataPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, kind, id string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg changedMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil && msg.ID != "" {
				handler(ctx, msg.Kind, msg.ID)
			}
		}
	}
}

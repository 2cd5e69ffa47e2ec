package events

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisPublisher implements ports.EventPublisher over Redis Pub/Sub. Each
// route is published as JSON on "<prefix>:<date>".
type RedisPublisher struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisPublisher connects using a redis:// URL and verifies the connection.
func NewRedisPublisher(ctx context.Context, url string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis publisher: parse url: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis publisher: ping: %w", err)
	}

	return NewRedisPublisherFromClient(rdb), nil
}

func NewRedisPublisherFromClient(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, prefix: "routes"}
}

// Channel returns the channel events for date are published on.
func (p *RedisPublisher) Channel(date string) string { return p.prefix + ":" + date }

func (p *RedisPublisher) PublishRoute(ctx context.Context, evt domain.RouteEvent) (err error) {
	defer obs.Time(ctx, "events.PublishRoute")(&err)

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("publish route: marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, p.Channel(evt.Date), data).Err(); err != nil {
		return fmt.Errorf("publish route: crew=%s: %w", evt.CrewID, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error { return p.rdb.Close() }

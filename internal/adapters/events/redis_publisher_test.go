package events

import (
	"context"
	"crew-route-service/internal/domain"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisherPublishesRouteEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	pub, err := NewRedisPublisher(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = sub.Close() })
	ps := sub.Subscribe(ctx, pub.Channel("2026-01-05"))
	t.Cleanup(func() { _ = ps.Close() })
	_, err = ps.Receive(ctx)
	require.NoError(t, err)

	evt := domain.RouteEvent{
		RunID:          "run-1",
		Date:           "2026-01-05",
		CrewID:         "c1",
		Shift:          domain.ShiftMorning,
		JobIDs:         []string{"J1", "J3"},
		EstimatedStart: "08:00",
		EstimatedEnd:   "10:40",
		PublishedAt:    time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishRoute(ctx, evt))

	select {
	case msg := <-ps.Channel():
		assert.Equal(t, "routes:2026-01-05", msg.Channel)

		var got domain.RouteEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, evt, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestNewRedisPublisherErrors(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), "not a url")
	require.Error(t, err)

	_, err = NewRedisPublisher(context.Background(), "redis://127.0.0.1:1")
	require.Error(t, err)
}

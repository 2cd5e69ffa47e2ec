package ports

import (
	"context"
	"crew-route-service/internal/domain"
)

// Hands finished crew schedules to the downstream notification pipeline.
type EventPublisher interface {
	PublishRoute(ctx context.Context, evt domain.RouteEvent) error
}

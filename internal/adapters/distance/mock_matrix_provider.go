package distance

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"fmt"
	"sync"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockMatrixProvider answers matrix requests from a fixed table of directed
// pairs and counts calls. Unknown pairs are an error.
type MockMatrixProvider struct {
	m     map[string]ports.DistanceResult
	mu    sync.Mutex
	calls int
}

func NewMockMatrixProvider(pairs []MockPair) *MockMatrixProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockMatrixProvider{m: m}
}

func (p *MockMatrixProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, ok := p.m[pairKey(origin, d)]
		if !ok {
			return nil, fmt.Errorf("missing pair %s -> %s", origin.Key(), d.Key())
		}
		out[d.Key()] = r
	}
	return out, nil
}

// Calls returns how many matrix rows were requested.
func (p *MockMatrixProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

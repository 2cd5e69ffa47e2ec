package distance

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentRows bounds parallel matrix requests against the provider.
const maxConcurrentRows = 5

// BuildMatrixModel fetches every directed leg between the given points and
// returns a MatrixModel over them. Duplicate points are fetched once. The first
// provider error cancels the remaining requests.
func BuildMatrixModel(
	ctx context.Context,
	provider ports.DistanceMatrixProvider,
	points []domain.Coordinates,
	fallback ports.DistanceModel,
) (_ *MatrixModel, err error) {
	defer obs.Time(ctx, "distance.BuildMatrixModel")(&err)

	model := NewMatrixModel(fallback)

	seen := make(map[string]struct{}, len(points))
	uniq := make([]domain.Coordinates, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		uniq = append(uniq, p)
	}
	if len(uniq) < 2 {
		return model, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRows)

	for i, origin := range uniq {
		targets := make([]domain.Coordinates, 0, len(uniq)-1)
		for j, t := range uniq {
			if j != i {
				targets = append(targets, t)
			}
		}

		g.Go(func() error {
			row, err := provider.GetDistances(gctx, origin, targets)
			if err != nil {
				return fmt.Errorf("build matrix: distances from %s: %w", origin.Key(), err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, t := range targets {
				r, ok := row[t.Key()]
				if !ok {
					return fmt.Errorf("build matrix: missing distance from %s to %s", origin.Key(), t.Key())
				}
				model.Set(origin, t, r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return model, nil
}

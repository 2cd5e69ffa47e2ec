package distance

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"fmt"
	"net/http"
	"net/url"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany resolves already-normalized addresses one by one using
// OpenRouteService (/geocode/search). Addresses without a usable match are
// logged and skipped.
func (o *ORSDistanceProvider) geocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		coord, ok, err := o.geocodeOne(ctx, a)
		if err != nil {
			return nil, err
		}
		if !ok {
			obs.Logger(ctx).Warn().Str("address", a).Msg("no geocode result")
			continue
		}
		out[a] = coord
	}

	return out, nil
}

func (o *ORSDistanceProvider) geocodeOne(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("boundary.country", o.country)
	q.Set("size", "1")

	var decoded geocodeResponse
	if err := o.callJSON(ctx, orsCall{Method: http.MethodGet, Path: "/geocode/search", Query: q}, &decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}
	lngLat := decoded.Features[0].Geometry.Coordinates
	if len(lngLat) != 2 {
		return domain.Coordinates{}, false, nil
	}
	return domain.Coordinates{Lng: lngLat[0], Lat: lngLat[1]}, true, nil
}

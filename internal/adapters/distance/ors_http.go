package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	orsMaxAttempts    = 4
	orsInitialBackoff = 200 * time.Millisecond
	orsErrorBodyLimit = 4096
)

// httpStatusError carries a non-2xx ORS response.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("ors status %d: %s", e.Code, e.Body)
}

// transient reports whether a failed attempt is worth repeating.
func transient(err error) bool {
	var se *httpStatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// orsCall describes one ORS endpoint invocation. Query is appended to the
// URL; a non-nil Body is sent as JSON.
type orsCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// callJSON runs c against the ORS API and decodes the response into out.
// Transient failures are retried with exponential backoff; every attempt
// waits on the rate limiter first.
func (o *ORSDistanceProvider) callJSON(ctx context.Context, c orsCall, out any) error {
	var payload []byte
	if c.Body != nil {
		b, err := json.Marshal(c.Body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", c.Path, err)
		}
		payload = b
	}

	endpoint := o.baseURL + c.Path
	if len(c.Query) > 0 {
		endpoint += "?" + c.Query.Encode()
	}

	wait := orsInitialBackoff
	for attempt := 1; ; attempt++ {
		err := o.attempt(ctx, c.Method, endpoint, payload, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !transient(err) || attempt == orsMaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func (o *ORSDistanceProvider) attempt(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, orsErrorBodyLimit))
		return &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

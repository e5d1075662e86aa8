package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/colonyops/minutes/internal/core/tracker"
)

// ErrNotHealthy is returned by WaitReady when the backend answered but
// reported an unhealthy component on the final attempt.
var ErrNotHealthy = errors.New("backend not healthy")

// WaitReady polls GET /status with exponential backoff until the backend
// reports healthy or maxWait elapses. The last status seen is returned
// alongside any error.
func (c *Client) WaitReady(ctx context.Context, maxWait time.Duration) (tracker.BackendStatus, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxWait

	var last tracker.BackendStatus
	attempt := 0
	op := func() error {
		attempt++
		st, err := c.Status(ctx)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
				return backoff.Permanent(err)
			}
			c.log.Debug().Err(err).Int("attempt", attempt).Msg("backend not reachable yet")
			return err
		}
		last = st
		if !st.Healthy() {
			c.log.Debug().
				Str("backend", st.Backend).
				Str("database", st.Database).
				Int("attempt", attempt).
				Msg("backend not healthy yet")
			return ErrNotHealthy
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return last, fmt.Errorf("wait for backend after %d attempts: %w", attempt, err)
	}
	return last, nil
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wneessen/mapviewer/internal/logger"
)

// RetryPolicy controls how often GetBytesWithRetry repeats a failing request.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first one
	MaxAttempts uint
	// MaxConnectAttempts limits the attempts that fail on the transport level
	MaxConnectAttempts uint
	// InitialBackoff is the wait time before the first retry, it doubles with every retry
	InitialBackoff time.Duration
	// MaxBackoff caps the wait time between two attempts
	MaxBackoff time.Duration
}

// DefaultRetryPolicy returns the policy used for static map requests: 10 attempts in
// total, 5 of which may be connection failures, starting with a 500ms backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:        10,
		MaxConnectAttempts: 5,
		InitialBackoff:     time.Millisecond * 500,
		MaxBackoff:         time.Minute * 2,
	}
}

func (p RetryPolicy) normalize() RetryPolicy {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = 1
	}
	if p.MaxConnectAttempts == 0 || p.MaxConnectAttempts > p.MaxAttempts {
		p.MaxConnectAttempts = p.MaxAttempts
	}
	if p.MaxBackoff < p.InitialBackoff {
		p.MaxBackoff = p.InitialBackoff
	}
	return p
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialBackoff
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxInterval = p.MaxBackoff
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)
}

// GetBytesWithRetry performs GetBytesWithTimeout and repeats it according to policy. Transport
// errors, timeouts, HTTP 429 and HTTP 5xx are retried, every other error is returned right away.
// Each attempt gets its own timeout.
func (h *Client) GetBytesWithRetry(ctx context.Context, endpoint string, query url.Values, headers map[string]string,
	timeout time.Duration, policy RetryPolicy,
) ([]byte, error) {
	policy = policy.normalize()

	var data []byte
	var attempts, connectFailures uint
	operation := func() error {
		attempts++
		var err error
		data, err = h.GetBytesWithTimeout(ctx, endpoint, query, headers, timeout)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			if !statusErr.Temporary() {
				return backoff.Permanent(err)
			}
		case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded):
			connectFailures++
			if connectFailures >= policy.MaxConnectAttempts {
				return backoff.Permanent(err)
			}
		default:
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		h.logger.Debug("HTTP request failed, retrying", logger.Err(err), slog.Uint64("attempt", uint64(attempts)),
			slog.Duration("wait", wait))
	}

	if err := backoff.RetryNotify(operation, policy.backOff(ctx), notify); err != nil {
		return nil, fmt.Errorf("request failed after %d attempt(s): %w", attempts, err)
	}
	return data, nil
}

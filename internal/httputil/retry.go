// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil holds HTTP helpers shared by the search backends.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the first backoff interval after an HTTP 429. Every
// further retry doubles it. Tests shrink this to keep runs fast.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// DoWithRetry issues req and, while the server answers 429 Too Many
// Requests, backs off and retries: RetryBaseDelay after the first 429,
// doubling per attempt. maxRetries <= 0 selects the default of 5.
//
// A 429 body is drained and closed before the wait, and cancellation
// during a wait returns ctx.Err(). Once retries run out the final 429
// response is handed back unread so the caller can inspect it. Any status
// other than 429 returns immediately, errors included.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	delay := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt == maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"court-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

var errMaxRetriesExceeded = errs.New("transaction failed after max retries")

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

// retryPolicy re-runs a whole transaction when Postgres aborts it for
// serialization or deadlock reasons. Any other error is final.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

// run calls attempt until it succeeds, fails for good, or ctx ends. When the
// retries run out the last error is marked with errMaxRetriesExceeded.
func (p retryPolicy) run(ctx context.Context, attempt func() error) error {
	for n := 0; ; n++ {
		err := attempt()
		if err == nil || !isRetryableError(err) {
			return err
		}
		if n >= p.maxRetries {
			slog.Error("transaction failed after max retries", "attempts", n+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := p.backoff(n)
		slog.Warn("retrying transaction",
			"attempt", n+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff doubles per attempt and adds up to 20% jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := p.base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

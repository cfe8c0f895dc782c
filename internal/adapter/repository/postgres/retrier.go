package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
	pgErrUniqueViolation      = "23505"
)

// RetryPolicy bounds how often a transaction is re-run. Zero fields take
// the defaults of DefaultRetryPolicy.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy suits the short insert transaction that records a
// user's transaction.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// Retrier re-runs operations that failed on lock contention, serialization
// conflicts or a connection dropped before the statement was sent.
type Retrier struct {
	policy RetryPolicy
	logger zerolog.Logger
}

func NewRetrier(logger zerolog.Logger, policy RetryPolicy) *Retrier {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = DefaultRetryPolicy.MaxRetries
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = DefaultRetryPolicy.InitialInterval
	}
	if policy.MaxInterval <= 0 {
		policy.MaxInterval = DefaultRetryPolicy.MaxInterval
	}
	if policy.MaxElapsedTime <= 0 {
		policy.MaxElapsedTime = DefaultRetryPolicy.MaxElapsedTime
	}
	return &Retrier{policy: policy, logger: logger}
}

func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.MaxElapsedTime = r.policy.MaxElapsedTime

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}

		reason, ok := retryReason(err)
		if !ok || attempt > r.policy.MaxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Str("reason", reason).
			Int("attempt", attempt).
			Msg("retrying database operation")
		return err
	}, backoff.WithContext(b, ctx))
}

// retryReason classifies err; ok is false for errors that must not be retried.
func retryReason(err error) (reason string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock:
			return "deadlock", true
		case pgErrSerializationFailure:
			return "serialization_failure", true
		case pgErrLockNotAvailable:
			return "lock_timeout", true
		}
		return "", false
	}
	if pgconn.SafeToRetry(err) {
		return "connection", true
	}
	return "", false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

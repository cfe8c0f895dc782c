package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds the lock-check-insert transaction
	// behind TransactionUseCase.Add.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL applies when the server is not configured with one.
	IdempotencyKeyTTL = 24 * time.Hour

	DefaultReportCacheTTL = 10 * time.Minute
)

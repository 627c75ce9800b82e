package usecase

import "time"

const (
	// BalanceCacheTTL bounds staleness of the read-only balance cache.
	BalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing is the placeholder an IdempotencyStore
	// stores while the first request with a key is still in flight.
	IdempotencyProcessing = "processing"
)

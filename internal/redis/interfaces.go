package redis

import "scooter/internal/middleware"

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)

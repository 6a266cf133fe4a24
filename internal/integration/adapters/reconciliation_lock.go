// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerlink/backend/internal/application/adapter"
)

const (
	// reconciliationLockKey is the Redis key guarding automatic linking runs.
	reconciliationLockKey = "ledgerlink:reconciliation:lock"

	// reconciliationLockTTL bounds how long a crashed run can hold the lock.
	reconciliationLockTTL = 5 * time.Minute
)

// redisReconciliationLocker implements the adapter.ReconciliationLocker
// interface with a Redis SET NX lock. A single instance of the lock guards
// all automatic linking runs so concurrent callers cannot claim overlapping
// records.
type redisReconciliationLocker struct {
	client *redis.Client
}

// NewRedisReconciliationLocker creates a new Redis-backed reconciliation locker.
func NewRedisReconciliationLocker(client *redis.Client) adapter.ReconciliationLocker {
	return &redisReconciliationLocker{
		client: client,
	}
}

// TryLock attempts to acquire the reconciliation lock without blocking.
func (l *redisReconciliationLocker) TryLock(ctx context.Context) (bool, error) {
	acquired, err := l.client.SetNX(ctx, reconciliationLockKey, "1", reconciliationLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire reconciliation lock: %w", err)
	}
	return acquired, nil
}

// Unlock releases the reconciliation lock.
func (l *redisReconciliationLocker) Unlock(ctx context.Context) error {
	if err := l.client.Del(ctx, reconciliationLockKey).Err(); err != nil {
		return fmt.Errorf("failed to release reconciliation lock: %w", err)
	}
	return nil
}

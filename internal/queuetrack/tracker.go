package queuetrack

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrTransientStore reports that the backing Redis was unreachable. Safe
// to retry; the caller decides whether the surrounding job fails.
var ErrTransientStore = errors.New("queue store unavailable")

// commands is the slice of the Redis API the tracker touches, satisfied by
// *redis.Client.
type commands interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LRem(ctx context.Context, key string, count int64, value interface{}) *redis.IntCmd
}

// Tracker keeps an ordered list of outstanding task ids per job class so
// clients can poll their queue position. Positions are a snapshot over a
// mutable list: advisory, for progress display only, never for scheduling.
type Tracker struct {
	rdb commands
}

func New(rdb *redis.Client) *Tracker {
	return &Tracker{rdb: rdb}
}

func queueKey(class string) string {
	return class + "_queue"
}

// Enqueue appends the task id to the tail of the class's list. Callers must
// not enqueue the same id twice for one class; duplicates would make the
// reported position inconsistent.
func (t *Tracker) Enqueue(ctx context.Context, class, taskID string) error {
	if err := t.rdb.RPush(ctx, queueKey(class), taskID).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %v", ErrTransientStore, queueKey(class), err)
	}
	return nil
}

// Position returns the zero-based index of the task id within the class's
// current list, or false when the id is absent (already drained, or never
// enqueued).
func (t *Tracker) Position(ctx context.Context, class, taskID string) (int, bool, error) {
	ids, err := t.rdb.LRange(ctx, queueKey(class), 0, -1).Result()
	if err != nil {
		return 0, false, fmt.Errorf("%w: lrange %s: %v", ErrTransientStore, queueKey(class), err)
	}
	for i, id := range ids {
		if id == taskID {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Remove deletes every occurrence of the task id from the class's list.
// Removing an absent id is a no-op, so release paths can call it
// unconditionally.
func (t *Tracker) Remove(ctx context.Context, class, taskID string) error {
	if err := t.rdb.LRem(ctx, queueKey(class), 0, taskID).Err(); err != nil {
		return fmt.Errorf("%w: lrem %s: %v", ErrTransientStore, queueKey(class), err)
	}
	return nil
}

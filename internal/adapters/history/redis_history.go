// Package history persists past trip submissions in Redis as a capped,
// most-recent-first list.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
)

// Submissions beyond this many are evicted oldest-first.
const MaxEntries = 50

const historyKey = "travel:history"

type RedisHistoryStore struct {
	client *redis.Client
}

func NewRedisHistoryStore(client *redis.Client) *RedisHistoryStore {
	return &RedisHistoryStore{client: client}
}

// Push records a submission at the head of the list and trims the tail
// past the cap.
func (s *RedisHistoryStore) Push(ctx context.Context, sub domain.Submission) (err error) {
	defer obs.Time(ctx, "history.Push")(&err)

	if sub.ID == "" {
		return errors.New("push history: submission id is empty")
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("push history: marshal submission: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, historyKey, payload)
	pipe.LTrim(ctx, historyKey, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push history: redis pipeline: %w", err)
	}

	return nil
}

// List returns all stored submissions, most recent first. Entries that
// no longer unmarshal are skipped rather than failing the listing.
func (s *RedisHistoryStore) List(ctx context.Context) (_ []domain.Submission, err error) {
	defer obs.Time(ctx, "history.List")(&err)

	raw, err := s.client.LRange(ctx, historyKey, 0, MaxEntries-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: redis lrange: %w", err)
	}

	out := make([]domain.Submission, 0, len(raw))
	for _, item := range raw {
		var sub domain.Submission
		if err := json.Unmarshal([]byte(item), &sub); err != nil {
			continue
		}
		out = append(out, sub)
	}

	return out, nil
}

// Get returns the submission with the given id, or nil when absent.
func (s *RedisHistoryStore) Get(ctx context.Context, id string) (*domain.Submission, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get history %q: %w", id, err)
	}

	for i := range subs {
		if subs[i].ID == id {
			return &subs[i], nil
		}
	}

	return nil, nil
}

package credits

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-triple idempotency marker.
	tripleKeyPrefix = "credits:triple:"
	// List holding the serialized event log in insertion order.
	eventLogKey = "credits:events"
)

// RedisStore is a Redis-backed event log for distributed deployments where
// multiple instances must share idempotency state. SETNX on the triple key is
// the atomic check-and-set; the log list is only appended after a winning
// SETNX, and totals are always derived by reading the log.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) InsertIfAbsent(ctx context.Context, event Event) (bool, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("marshal credit event: %w", err)
	}

	won, err := s.client.SetNX(ctx, tripleKeyPrefix+event.TripleKey(), event.ID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("setnx credit triple: %w", err)
	}
	if !won {
		return false, nil
	}

	if err := s.client.RPush(ctx, eventLogKey, payload).Err(); err != nil {
		return false, fmt.Errorf("append credit event: %w", err)
	}
	return true, nil
}

func (s *RedisStore) Recent(ctx context.Context, n int) ([]Event, error) {
	raw, err := s.client.LRange(ctx, eventLogKey, int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent credit events: %w", err)
	}

	events := make([]Event, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e Event
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			return nil, fmt.Errorf("unmarshal credit event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *RedisStore) CountByContributor(ctx context.Context) (map[string]int, error) {
	raw, err := s.client.LRange(ctx, eventLogKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read credit events: %w", err)
	}

	totals := make(map[string]int)
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("unmarshal credit event: %w", err)
		}
		totals[e.From]++
	}
	return totals, nil
}

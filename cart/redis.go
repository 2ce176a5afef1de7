package cart

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each session's cart in a Redis hash keyed by
// "cart:<session>", with product ids as fields and quantities as values.
// It lets several app instances share carts without sharing memory.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) key(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (map[uint]int, error) {
	raw, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	entries := make(map[uint]int, len(raw))
	for field, value := range raw {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		entries[uint(id)] = qty
	}
	return entries, nil
}

func (s *RedisStore) Add(ctx context.Context, sessionID string, productID uint, qty int) (int, int, error) {
	field := strconv.FormatUint(uint64(productID), 10)
	newQty, err := s.client.HIncrBy(ctx, s.key(sessionID), field, int64(qty)).Result()
	if err != nil {
		return 0, 0, err
	}
	totalItems, err := s.totalItems(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	return int(newQty), totalItems, nil
}

func (s *RedisStore) Remove(ctx context.Context, sessionID string, productID uint) (int, int, error) {
	field := strconv.FormatUint(uint64(productID), 10)
	value, err := s.client.HGet(ctx, s.key(sessionID), field).Result()
	if err == redis.Nil {
		totalItems, terr := s.totalItems(ctx, sessionID)
		if terr != nil {
			return 0, 0, terr
		}
		return 0, totalItems, ErrNotInCart
	}
	if err != nil {
		return 0, 0, err
	}
	removed, _ := strconv.Atoi(value)
	if err := s.client.HDel(ctx, s.key(sessionID), field).Err(); err != nil {
		return 0, 0, err
	}
	totalItems, err := s.totalItems(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	return removed, totalItems, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) (int, error) {
	cleared, err := s.totalItems(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return 0, err
	}
	return cleared, nil
}

func (s *RedisStore) totalItems(ctx context.Context, sessionID string) (int, error) {
	values, err := s.client.HVals(ctx, s.key(sessionID)).Result()
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, value := range values {
		if qty, err := strconv.Atoi(value); err == nil {
			sum += qty
		}
	}
	return sum, nil
}

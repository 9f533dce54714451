package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
)

// AvailabilityRedisCache guarda, por loja e versão, um hash
// availability:shop:{id}:v{versão} cujos campos são "{data}:{dias}".
// A versão fica em availability:shop:{id}:version; invalidar faz INCR nela
// e os hashes antigos somem pelo TTL.
type AvailabilityRedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityRedisCache(client *redis.Client, ttl time.Duration) *AvailabilityRedisCache {
	return &AvailabilityRedisCache{client: client, ttl: ttl}
}

func versionKey(shopID uint) string {
	return fmt.Sprintf("availability:shop:%d:version", shopID)
}

func shopKey(shopID uint, version int64) string {
	return fmt.Sprintf("availability:shop:%d:v%d", shopID, version)
}

func (c *AvailabilityRedisCache) Version(ctx context.Context, shopID uint) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(shopID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func windowField(from time.Time, days int) string {
	return fmt.Sprintf("%s:%d", from.Format(time.RFC3339), days)
}

func (c *AvailabilityRedisCache) Get(
	ctx context.Context,
	shopID uint,
	version int64,
	from time.Time,
	days int,
) ([]domain.BusyInterval, bool, error) {

	raw, err := c.client.HGet(ctx, shopKey(shopID, version), windowField(from, days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var intervals []domain.BusyInterval
	if err := json.Unmarshal(raw, &intervals); err != nil {
		return nil, false, err
	}
	return intervals, true, nil
}

func (c *AvailabilityRedisCache) Set(
	ctx context.Context,
	shopID uint,
	version int64,
	from time.Time,
	days int,
	intervals []domain.BusyInterval,
) error {

	payload, err := json.Marshal(intervals)
	if err != nil {
		return err
	}

	key := shopKey(shopID, version)
	vkey := versionKey(shopID)

	// WATCH na versão: se uma invalidação chegou depois da leitura do
	// banco, a escrita é descartada.
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, windowField(from, days), payload)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, vkey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *AvailabilityRedisCache) Invalidate(ctx context.Context, shopID uint) error {
	return c.client.Incr(ctx, versionKey(shopID)).Err()
}

var _ domain.AvailabilityCache = (*AvailabilityRedisCache)(nil)

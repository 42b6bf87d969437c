package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/pkg/config"
)

var (
	_ ports.StockCache      = (*StockCache)(nil)
	_ production.StockCache = (*StockCache)(nil)
)

var errStaleVersion = errors.New("generación del caché desactualizada")

const (
	stockKey   = "korxona:warehouse:stock"
	versionKey = "korxona:warehouse:stock:version"
)

// StockCache listado de almacén en Redis. Sin cliente se comporta como caché vacío.
type StockCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStockCache conecta a Redis. Si Addr está vacío devuelve un caché deshabilitado.
func NewStockCache(ctx context.Context, cfg config.RedisConfig) (*StockCache, error) {
	if cfg.Addr == "" {
		return &StockCache{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewStockCacheWithClient(client, cfg.TTL), nil
}

// NewStockCacheWithClient usa un cliente ya creado.
func NewStockCacheWithClient(client redis.UniversalClient, ttl time.Duration) *StockCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StockCache{client: client, ttl: ttl}
}

// Enabled indica si hay un cliente Redis.
func (c *StockCache) Enabled() bool { return c.client != nil }

func (c *StockCache) Get(ctx context.Context) (*dto.StockListResponse, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, stockKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list dto.StockListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		// entrada corrupta: se descarta
		_ = c.client.Del(ctx, stockKey).Err()
		return nil, false, nil
	}
	return &list, true, nil
}

// Version generación actual del listado; 0 si nunca se invalidó.
func (c *StockCache) Version(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set guarda el listado solo si la generación sigue siendo version (WATCH/MULTI).
func (c *StockCache) Set(ctx context.Context, version int64, list *dto.StockListResponse) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, stockKey, data, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		// invalidado mientras se leía la base: no se guarda
		return nil
	}
	return err
}

// Invalidate borra el listado e incrementa la generación en una sola transacción.
func (c *StockCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Del(ctx, stockKey)
		return nil
	})
	return err
}

// Close cierra el cliente.
func (c *StockCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

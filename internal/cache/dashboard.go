// internal/cache/dashboard.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jpgart/famus-unified-reports-sub001/internal/config"
	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

const (
	dashboardKeyPrefix  = "reports:dashboard"
	scanBatchSize       = 100
	defaultDashboardTTL = time.Minute
)

// DashboardCache stores rendered dashboard payloads keyed by their filter.
// The aggregation core's own memoization is the in-process single slot; this
// cache sits in front of the HTTP layer so repeated dashboard requests skip
// the full recomputation and serialization.
type DashboardCache interface {
	Get(ctx context.Context, filter *domain.DashboardFilter) (*domain.DashboardReport, bool, error)
	Set(ctx context.Context, filter *domain.DashboardFilter, report *domain.DashboardReport) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, filter *domain.DashboardFilter) (*domain.DashboardReport, bool, error) {
	key := buildDashboardKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.DashboardReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, filter *domain.DashboardFilter, report *domain.DashboardReport) error {
	key := buildDashboardKey(filter)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, filter *domain.DashboardFilter) (*domain.DashboardReport, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, filter *domain.DashboardFilter, report *domain.DashboardReport) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildDashboardKey(filter *domain.DashboardFilter) string {
	if filter == nil {
		return dashboardKeyPrefix + ":default"
	}

	var parts []string
	if len(filter.Categories) > 0 {
		parts = append(parts, "categories="+strings.Join(filter.Categories, ","))
	}
	if filter.TopVarieties > 0 {
		parts = append(parts, "top_varieties="+strconv.Itoa(filter.TopVarieties))
	}

	if len(parts) == 0 {
		return dashboardKeyPrefix + ":default"
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}

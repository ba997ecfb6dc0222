// Package cache wraps an optional Redis client. Every helper tolerates a nil
// client so the server keeps working when Redis is unavailable; callers fall
// through to the database on a miss.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"transport-backend/internal/config"
)

const (
	DashboardStatsKey = "dashboard:stats"
	CustomerListKey   = "customers:list"

	dashboardTTL = 5 * time.Minute
	customerTTL  = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Ping reports whether a Redis client is configured and reachable.
func Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("redis not configured")
	}
	return client.Ping(ctx).Err()
}

// GetDashboardStats returns the cached dashboard payload if present.
func GetDashboardStats(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetDashboardStats caches the dashboard payload.
func SetDashboardStats(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardStatsKey, data, dashboardTTL)
}

// GetCustomerList returns the cached customer list if present.
func GetCustomerList(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, CustomerListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCustomerList caches the customer list.
func SetCustomerList(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, CustomerListKey, data, customerTTL)
}

// InvalidateCustomers drops the cached customer list after a write.
func InvalidateCustomers(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, CustomerListKey)
}

// InvalidateDashboard drops the cached dashboard stats after any invoice or
// customer write.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardStatsKey)
}

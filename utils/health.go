package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every monitored service answered its last probe.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	healthKnown   bool
	mu            sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot and whether a
// probe has run at all. It reports false until StartHealthMonitor has
// completed its first pass, and always in memory mode.
func GetHealthStatus() (HealthStatus, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth, healthKnown
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
// The first probe runs immediately so /health has data before the first tick.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx := context.Background()
		var redisHealth []bool

		for _, client := range redisClients {
			err := client.Ping(ctx).Err()
			redisHealth = append(redisHealth, err == nil)
		}

		mongoHealthy := mongoClient.Ping(ctx, nil) == nil

		mu.Lock()
		currentHealth = HealthStatus{
			Mongo:     mongoHealthy,
			Redis:     redisHealth,
			CheckedAt: time.Now(),
		}
		healthKnown = true
		mu.Unlock()
	}

	go func() {
		probe()

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			probe()
		}
	}()
}

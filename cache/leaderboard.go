// Package cache хранит собранную таблицу сезона в Redis между
// пересчётами рангов.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuscup/intramurals/models"
	"github.com/redis/go-redis/v9"
)

const leaderboardTTL = 24 * time.Hour

type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(redisURL string) (*LeaderboardCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &LeaderboardCache{client: client}, nil
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

func leaderboardKey(year int) string {
	return fmt.Sprintf("leaderboard:%d", year)
}

func (c *LeaderboardCache) Store(ctx context.Context, year int, entries []models.LeaderboardEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey(year), payload, leaderboardTTL).Err()
}

func (c *LeaderboardCache) Fetch(ctx context.Context, year int) ([]models.LeaderboardEntry, error) {
	payload, err := c.client.Get(ctx, leaderboardKey(year)).Bytes()
	if err != nil {
		// redis.Nil - промах кэша, для вызывающего это просто ошибка.
		return nil, err
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "stats:"

// Stats holds cumulative win/loss counters for a client. Tracked for future
// use; never consulted when deciding a match outcome.
type Stats struct {
	Wins   int
	Losses int
}

type StatsRepository interface {
	AddWin(ctx context.Context, clientID string) error
	AddLoss(ctx context.Context, clientID string) error
	GetByID(ctx context.Context, clientID string) (Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) AddWin(ctx context.Context, clientID string) error {
	if err := that.client.HIncrBy(ctx, statsKeyPrefix+clientID, "wins", 1).Err(); err != nil {
		return fmt.Errorf("failed to increment wins: %w", err)
	}

	return nil
}

func (that *dbStats) AddLoss(ctx context.Context, clientID string) error {
	if err := that.client.HIncrBy(ctx, statsKeyPrefix+clientID, "losses", 1).Err(); err != nil {
		return fmt.Errorf("failed to increment losses: %w", err)
	}

	return nil
}

func (that *dbStats) GetByID(ctx context.Context, clientID string) (Stats, error) {
	fields, err := that.client.HGetAll(ctx, statsKeyPrefix+clientID).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get stats by ID: %w", err)
	}

	var stats Stats
	if raw, ok := fields["wins"]; ok {
		if stats.Wins, err = strconv.Atoi(raw); err != nil {
			return Stats{}, fmt.Errorf("failed to parse wins: %w", err)
		}
	}

	if raw, ok := fields["losses"]; ok {
		if stats.Losses, err = strconv.Atoi(raw); err != nil {
			return Stats{}, fmt.Errorf("failed to parse losses: %w", err)
		}
	}

	return stats, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/matchroom-backend/internal/apperror"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
)

const (
	gameKeyPrefix = "match:"
	openMatchesSet = "matches:open"
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	ListOpenIDs(ctx context.Context) ([]string, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

// CreateOrUpdate stores the match and keeps the open-match index in sync:
// a waiting match is a member of the open set, any other phase is not.
func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := gameKeyPrefix + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	if game.IsWaiting() {
		if err = that.client.SAdd(ctx, openMatchesSet, game.ID).Err(); err != nil {
			return fmt.Errorf("failed to add game to open set: %w", err)
		}

		return nil
	}

	if err = that.client.SRem(ctx, openMatchesSet, game.ID).Err(); err != nil {
		return fmt.Errorf("failed to remove game from open set: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := gameKeyPrefix + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Game{}, apperror.ErrMatchNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := gameKeyPrefix + id

	if err := that.client.Del(ctx, gameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if err := that.client.SRem(ctx, openMatchesSet, id).Err(); err != nil {
		return fmt.Errorf("failed to remove game from open set: %w", err)
	}

	return nil
}

// ListOpenIDs returns the identifiers of all matches still waiting for a
// second player.
func (that *dbGame) ListOpenIDs(ctx context.Context) ([]string, error) {
	ids, err := that.client.SMembers(ctx, openMatchesSet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}

	return ids, nil
}

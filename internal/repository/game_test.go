package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/matchroom-backend/internal/apperror"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)

	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(newTestClient(t))

	// Given: a waiting match
	game := entity.NewGame("match-1", entity.NewHostPlayer("client-1"))

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: the match is stored and listed as open
	require.NoError(t, err)

	openIDs, err := gameRepo.ListOpenIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"match-1"}, openIDs)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository(newTestClient(t))

		// Given: a stored match with one player
		game := entity.NewGame("match-1", entity.NewHostPlayer("client-1"))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with the existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved match matches the saved one
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.Status, retrievedGame.Status)
		require.Len(t, retrievedGame.Players, 1)
		assert.Equal(t, "client-1", retrievedGame.Players[0].ClientID)
		assert.True(t, retrievedGame.Players[0].IsTurn)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository(newTestClient(t))

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "no-such-match")

		// Then: ErrMatchNotFound is returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Empty(t, retrievedGame.ID)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(newTestClient(t))

	// Given: a stored waiting match
	game := entity.NewGame("match-1", entity.NewHostPlayer("client-1"))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

	// When: DeleteByID is called
	err := gameRepo.DeleteByID(ctx, game.ID)

	// Then: the match is gone and no longer listed as open
	require.NoError(t, err)

	_, err = gameRepo.GetByID(ctx, game.ID)
	assert.ErrorIs(t, err, apperror.ErrMatchNotFound)

	openIDs, err := gameRepo.ListOpenIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, openIDs)
}

func TestGameRepository_ListOpenIDs(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(newTestClient(t))

	// Given: one waiting match and one that went ongoing
	waiting := entity.NewGame("match-1", entity.NewHostPlayer("client-1"))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, waiting))

	ongoing := entity.NewGame("match-2", entity.NewHostPlayer("client-2"))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, ongoing))

	ongoing.Players = append(ongoing.Players, entity.NewGuestPlayer("client-3"))
	ongoing.Status = entity.StatusOngoing
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, ongoing))

	// When: listing open matches
	openIDs, err := gameRepo.ListOpenIDs(ctx)

	// Then: exactly the waiting match is listed
	require.NoError(t, err)
	assert.Equal(t, []string{"match-1"}, openIDs)
}

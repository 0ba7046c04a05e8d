package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/matchroom-backend/internal/apperror"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
	"github.com/rocketscienceinc/matchroom-backend/internal/metrics"
	"github.com/rocketscienceinc/matchroom-backend/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	ListOpenIDs(ctx context.Context) ([]string, error)
}

type statsRepo interface {
	AddWin(ctx context.Context, clientID string) error
	AddLoss(ctx context.Context, clientID string) error
}

// MatchManager is the match lifecycle engine: create, join and move, with all
// mutations of a given match serialized under that match's own lock.
type MatchManager struct {
	logger  *slog.Logger
	games   gameRepo
	stats   statsRepo
	metrics *metrics.Metrics

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewMatchManager(logger *slog.Logger, games gameRepo, stats statsRepo, m *metrics.Metrics) *MatchManager {
	return &MatchManager{
		logger:  logger.With("component", "match_manager"),
		games:   games,
		stats:   stats,
		metrics: m,
		locks:   make(map[string]*sync.Mutex),
	}
}

// CreateMatch allocates a new waiting match with the creator seated as the
// host. It has no precondition and always succeeds short of storage failure.
func (that *MatchManager) CreateMatch(ctx context.Context, clientID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateMatch")

	game := entity.NewGame(uuid.NewString(), entity.NewHostPlayer(clientID))

	if err := that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.metrics.OpenMatches.Inc()
	log.Info("match created", "gameID", game.ID, "clientID", clientID)

	return game, nil
}

// JoinMatch seats the client as the guest player and starts the match.
// Joining a match the client already sits in returns the match unchanged.
func (that *MatchManager) JoinMatch(ctx context.Context, gameID, clientID string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinMatch", "gameID", gameID)

	lock := that.matchLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.PlayerByClientID(clientID) != nil {
		return game, nil
	}

	if game.IsFinished() {
		return nil, apperror.ErrMatchFinished
	}

	if game.IsFull() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrMatchFull, gameID)
	}

	game.Players = append(game.Players, entity.NewGuestPlayer(clientID))
	game.Status = entity.StatusOngoing

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.metrics.OpenMatches.Dec()
	log.Info("player joined match", "clientID", clientID)

	return game, nil
}

// MakeTurn validates and applies one move under the match lock, then runs the
// outcome check. A rejected move leaves the stored match untouched.
func (that *MatchManager) MakeTurn(ctx context.Context, gameID, clientID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	lock := that.matchLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = tictactoe.MakeTurn(game, clientID, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.metrics.MovesTotal.Inc()

	if game.IsFinished() {
		that.recordResult(ctx, game)

		// A finished match accepts no operations, so dropping it from the
		// store is invisible at the protocol level and keeps the open-match
		// index exact.
		if err = that.games.DeleteByID(ctx, game.ID); err != nil {
			log.Error("failed to delete finished game", "error", err)
		}

		return game, nil
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("player made a turn", "clientID", clientID, "cell", cell)

	return game, nil
}

// ListOpenMatches returns the identifiers of matches still waiting for a
// second player, in stable order.
func (that *MatchManager) ListOpenMatches(ctx context.Context) ([]string, error) {
	ids, err := that.games.ListOpenIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}

	sort.Strings(ids)

	return ids, nil
}

// recordResult updates the seated players' counters and the cumulative
// per-client stats. Stats failures are logged, never surfaced: the match
// outcome already stands.
func (that *MatchManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	if game.Winner == entity.MarkTie {
		that.metrics.MatchesFinished.WithLabelValues("draw").Inc()
		log.Info("match finished in a draw")
		return
	}

	that.metrics.MatchesFinished.WithLabelValues("win").Inc()

	for _, player := range game.Players {
		if player.Mark == game.Winner {
			player.Wins++
			if err := that.stats.AddWin(ctx, player.ClientID); err != nil {
				log.Error("failed to record win", "clientID", player.ClientID, "error", err)
			}
			continue
		}

		player.Losses++
		if err := that.stats.AddLoss(ctx, player.ClientID); err != nil {
			log.Error("failed to record loss", "clientID", player.ClientID, "error", err)
		}
	}

	log.Info("match finished", "winner", game.Winner)
}

func (that *MatchManager) matchLock(gameID string) *sync.Mutex {
	that.locksMu.Lock()
	defer that.locksMu.Unlock()

	lock, ok := that.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[gameID] = lock
	}

	return lock
}

package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/matchroom-backend/internal/apperror"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
)

// stateErrors are rejections of a well-formed request against the current
// match state. They go back to the sender only; nothing is broadcast.
var stateErrors = []error{
	apperror.ErrMatchNotFound,
	apperror.ErrMatchFull,
	apperror.ErrMatchFinished,
	apperror.ErrMatchNotStarted,
	apperror.ErrNotYourTurn,
	apperror.ErrNotInMatch,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
}

func isStateError(err error) bool {
	for _, sentinel := range stateErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func (that *Server) handleCreate(ctx context.Context, clientID string, msg *Message) {
	log := that.logger.With("method", "handleCreate", "clientID", clientID)

	game, err := that.manager.CreateMatch(ctx, clientID)
	if err != nil {
		log.Error("failed to create match", "error", err)
		that.sendErrorReply(clientID, msg.Method, "failed to create a new game")
		return
	}

	that.clients.Send(clientID, Message{Method: MethodCreate, Game: game})
	that.notifyOpenMatches(ctx)
}

func (that *Server) handleJoin(ctx context.Context, clientID string, msg *Message) {
	log := that.logger.With("method", "handleJoin", "clientID", clientID)

	if msg.GameID == "" {
		that.sendErrorReply(clientID, msg.Method, "gameId is required")
		return
	}

	game, err := that.manager.JoinMatch(ctx, msg.GameID, clientID)
	if err != nil {
		if !isStateError(err) {
			log.Error("failed to join match", "gameID", msg.GameID, "error", err)
		}
		that.sendErrorReply(clientID, msg.Method, err.Error())
		return
	}

	that.clients.Send(clientID, Message{Method: MethodJoin, Game: game})
	// The board update doubles as the "your move" prompt for the host.
	that.notifyMatch(game, Message{Method: MethodUpdateBoard, Game: game})
	that.notifyOpenMatches(ctx)
}

func (that *Server) handleMakeMove(ctx context.Context, clientID string, msg *Message) {
	log := that.logger.With("method", "handleMakeMove", "clientID", clientID)

	if msg.GameID == "" || msg.Cell == nil {
		that.sendErrorReply(clientID, msg.Method, "gameId and cell are required")
		return
	}

	game, err := that.manager.MakeTurn(ctx, msg.GameID, clientID, *msg.Cell)
	if err != nil {
		if !isStateError(err) {
			log.Error("failed to make turn", "gameID", msg.GameID, "error", err)
		}
		that.sendErrorReply(clientID, msg.Method, err.Error())
		return
	}

	switch {
	case game.IsFinished() && game.Winner != entity.MarkTie:
		that.notifyMatch(game, Message{Method: MethodGameEnds, Winner: game.Winner, Game: game})
	case game.IsFinished():
		that.notifyMatch(game, Message{Method: MethodDraw, Game: game})
	default:
		that.notifyMatch(game, Message{Method: MethodUpdateBoard, Game: game})
	}
}

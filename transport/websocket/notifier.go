package websocket

import (
	"context"

	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
)

// notifyOpenMatches re-broadcasts the full open-match list to every
// registered client. Not a diff; O(clients x matches) and accepted as such.
func (that *Server) notifyOpenMatches(ctx context.Context) {
	log := that.logger.With("method", "notifyOpenMatches")

	ids, err := that.manager.ListOpenMatches(ctx)
	if err != nil {
		log.Error("failed to list open matches", "error", err)
		return
	}

	if ids == nil {
		ids = []string{}
	}

	that.clients.Broadcast(gamesAvailMessage{Method: MethodGamesAvail, Games: ids})
}

// notifyMatch delivers a payload to exactly the match's players. A player
// whose connection has dropped silently misses it.
func (that *Server) notifyMatch(game *entity.Game, msg Message) {
	for _, player := range game.Players {
		that.clients.Send(player.ClientID, msg)
	}
}

func (that *Server) sendErrorReply(clientID, method, errorMsg string) {
	that.clients.Send(clientID, Message{Method: method, Error: errorMsg})
}

package websocket

import (
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
)

const (
	MethodConnect     = "connect"
	MethodCreate      = "create"
	MethodJoin        = "join"
	MethodMakeMove    = "makeMove"
	MethodGamesAvail  = "gamesAvail"
	MethodUpdateBoard = "updateBoard"
	MethodGameEnds    = "gameEnds"
	MethodDraw        = "draw"
)

// Message is the flat wire envelope: one JSON object per websocket text
// message, discriminated by method. Unused fields are omitted.
type Message struct {
	Method   string       `json:"method"`
	ClientID string       `json:"clientId,omitempty"`
	GameID   string       `json:"gameId,omitempty"`
	Cell     *int         `json:"cell,omitempty"`
	Game     *entity.Game `json:"game,omitempty"`
	Winner   string       `json:"winner,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// gamesAvailMessage keeps the games field present even when the open list is
// empty, so clients always see an array.
type gamesAvailMessage struct {
	Method string   `json:"method"`
	Games  []string `json:"games"`
}

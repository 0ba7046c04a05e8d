package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	MarkX   = "x"
	MarkO   = "o"
	MarkTie = "-"

	EmptyCell = ""

	MaxPlayers = 2
)

// Game is one two-player match: a board, up to two seated players and a
// lifecycle phase. The first joiner plays x and moves first.
type Game struct {
	ID      string    `json:"gameId"`
	Board   [9]string `json:"board"`
	Winner  string    `json:"winner,omitempty"`
	Status  string    `json:"status"`
	Players []*Player `json:"players"`
}

func NewGame(id string, host *Player) *Game {
	return &Game{
		ID:      id,
		Status:  StatusWaiting,
		Players: []*Player{host},
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// TurnPlayer returns the player whose move it is, or nil when the game is
// waiting or finished.
func (that *Game) TurnPlayer() *Player {
	for _, player := range that.Players {
		if player.IsTurn {
			return player
		}
	}

	return nil
}

func (that *Game) PlayerByClientID(clientID string) *Player {
	for _, player := range that.Players {
		if player.ClientID == clientID {
			return player
		}
	}

	return nil
}

package entity

// Player is one seat in a match. ClientID is a weak reference into the
// connection registry, never a connection handle.
type Player struct {
	ClientID string `json:"clientId"`
	Mark     string `json:"symbol"`
	IsTurn   bool   `json:"isTurn"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"lost"`
}

// NewHostPlayer seats the match creator: mark x, first turn.
func NewHostPlayer(clientID string) *Player {
	return &Player{
		ClientID: clientID,
		Mark:     MarkX,
		IsTurn:   true,
	}
}

// NewGuestPlayer seats the second joiner: mark o, waits for the host's move.
func NewGuestPlayer(clientID string) *Player {
	return &Player{
		ClientID: clientID,
		Mark:     MarkO,
	}
}

package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/matchroom-backend/internal/apperror"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MakeTurn applies a single move for the given client: exactly one empty cell
// changes, to the acting player's own mark, and only on that player's turn.
// On a rejected move the game is left untouched.
func MakeTurn(game *entity.Game, clientID string, cell int) error {
	if game.IsWaiting() {
		return apperror.ErrMatchNotStarted
	}

	if game.IsFinished() {
		return apperror.ErrMatchFinished
	}

	player := game.PlayerByClientID(clientID)
	if player == nil {
		return apperror.ErrNotInMatch
	}

	if cell < 0 || cell >= len(game.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !player.IsTurn {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	game.Board[cell] = player.Mark
	updateGameStatus(game, player.Mark)

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark string) {
	switch Evaluate(game.Board, mark) {
	case mark:
		game.Winner = mark
		game.Status = entity.StatusFinished
		clearTurns(game)
	case entity.MarkTie:
		game.Winner = entity.MarkTie
		game.Status = entity.StatusFinished
		clearTurns(game)
	default:
		for _, player := range game.Players {
			player.IsTurn = !player.IsTurn
		}
	}
}

func clearTurns(game *entity.Game) {
	for _, player := range game.Players {
		player.IsTurn = false
	}
}

// Evaluate decides the outcome after mark's move. Only the mover's mark can
// have completed a line, so no exhaustive scan for the other mark is done.
// Returns mark on a win, MarkTie on a full board with no win, empty string
// while the game continues.
func Evaluate(board [9]string, mark string) string {
	for _, combo := range WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return mark
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ""
		}
	}

	return entity.MarkTie
}

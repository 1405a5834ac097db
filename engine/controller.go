package engine

import (
	"fmt"
	"slices"

	"ludo/board"
	"ludo/game"
)

// RollOutcome reports what a roll did to the turn.
type RollOutcome struct {
	Player     int   // index of the player who rolled
	Dice       int   // face rolled
	ValidMoves []int // tokens the player may move; empty when Skipped
	Skipped    bool  // no legal move, play passed to the next player
}

// MoveOutcome reports what a move did to the turn.
type MoveOutcome struct {
	game.MoveResult
	ExtraTurn bool // a six was rolled and the match goes on
	GameOver  bool
}

// Roll records a die value for the current player. With no legal move the
// turn is skipped and the next player is awaited instead.
func Roll(gs *game.GameState, value int) (*game.GameState, RollOutcome, error) {
	if gs.IsTerminal() {
		return nil, RollOutcome{}, game.ErrGameOver
	}
	if gs.Phase != game.AwaitingRoll {
		return nil, RollOutcome{}, fmt.Errorf("%w: phase is %s", game.ErrNotAwaitingRoll, gs.Phase)
	}
	if value < 1 || value > board.DieFaces {
		return nil, RollOutcome{}, fmt.Errorf("%w: %d", game.ErrInvalidDice, value)
	}

	newGs := gs.Copy()
	outcome := RollOutcome{Player: gs.CurrentPlayerIndex, Dice: value}

	moves := game.ValidMoves(newGs.CurrentPlayer(), value)
	if len(moves) == 0 {
		outcome.Skipped = true
		outcome.ValidMoves = []int{}
		advance(newGs)
		return newGs, outcome, nil
	}

	newGs.DiceValue = value
	newGs.ValidMoves = moves
	newGs.Phase = game.AwaitingMove
	outcome.ValidMoves = slices.Clone(moves)
	return newGs, outcome, nil
}

// Move applies the current player's choice for the rolled die and decides
// who plays next.
func Move(gs *game.GameState, tokenIndex int) (*game.GameState, MoveOutcome, error) {
	if gs.IsTerminal() {
		return nil, MoveOutcome{}, game.ErrGameOver
	}
	if gs.Phase != game.AwaitingMove {
		return nil, MoveOutcome{}, fmt.Errorf("%w: phase is %s", game.ErrNotAwaitingMove, gs.Phase)
	}
	if !slices.Contains(gs.ValidMoves, tokenIndex) {
		return nil, MoveOutcome{}, fmt.Errorf("%w: token %d not in %v", game.ErrIllegalMove, tokenIndex, gs.ValidMoves)
	}

	newGs, result, err := game.ApplyMove(gs, tokenIndex, gs.DiceValue)
	if err != nil {
		return nil, MoveOutcome{}, err
	}
	newGs.Phase = game.TurnComplete
	outcome := MoveOutcome{MoveResult: result}

	if o, ok := game.Evaluate(newGs); ok {
		newGs.Winner = o.Winner.ID
		newGs.Rankings = o.Rankings
		newGs.Phase = game.GameOver
		newGs.ValidMoves = []int{}
		outcome.GameOver = true
		return newGs, outcome, nil
	}

	if result.Dice == board.DieFaces {
		newGs.DiceValue = 0
		newGs.ValidMoves = []int{}
		newGs.Phase = game.AwaitingRoll
		outcome.ExtraTurn = true
		return newGs, outcome, nil
	}

	advance(newGs)
	return newGs, outcome, nil
}

// advance hands the turn to the next seat. gs must be a fresh copy.
func advance(gs *game.GameState) {
	gs.CurrentPlayerIndex = gs.NextPlayerIndex()
	gs.TurnCount++
	gs.DiceValue = 0
	gs.ValidMoves = []int{}
	gs.Phase = game.AwaitingRoll
}

package game

import (
	"fmt"

	"ludo/board"
)

// CanMoveToken reports whether the token may move by dice pips. A six is the
// only way out of base and a move may never overshoot the finish.
func CanMoveToken(t Token, dice int) bool {
	if t.IsHome {
		return false
	}
	if t.InBase() {
		return dice == board.DieFaces
	}
	return t.Position+dice <= board.TotalSteps
}

// ValidMoves returns the indices of the player's tokens that may move.
func ValidMoves(p Player, dice int) []int {
	moves := []int{}
	if dice < 1 || dice > board.DieFaces {
		return moves
	}
	for i, t := range p.Tokens {
		if CanMoveToken(t, dice) {
			moves = append(moves, i)
		}
	}
	return moves
}

// Destination is the relative position the token would reach. It does not
// check legality.
func Destination(t Token, dice int) int {
	if t.InBase() {
		return 0
	}
	return t.Position + dice
}

// ApplyMove moves the current player's token and resolves captures. The
// returned snapshot is new; gs is left untouched. Turn bookkeeping (phase,
// dice, turn pointer) is the turn controller's job and is not changed here.
func ApplyMove(gs *GameState, tokenIndex, dice int) (*GameState, MoveResult, error) {
	if gs.IsTerminal() {
		return nil, MoveResult{}, ErrGameOver
	}
	if dice < 1 || dice > board.DieFaces {
		return nil, MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidDice, dice)
	}
	if tokenIndex < 0 || tokenIndex >= board.TokensPerPlayer {
		return nil, MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidToken, tokenIndex)
	}

	mover := gs.CurrentPlayerIndex
	token := gs.Players[mover].Tokens[tokenIndex]
	if !CanMoveToken(token, dice) {
		return nil, MoveResult{}, fmt.Errorf("%w: token %d cannot move %d", ErrIllegalMove, tokenIndex, dice)
	}

	newGs := gs.Copy()
	player := &newGs.Players[mover]

	result := MoveResult{
		Move:     Move{Player: mover, Token: tokenIndex, Dice: dice},
		From:     token.Position,
		To:       Destination(token, dice),
		Captures: []Capture{},
	}
	player.Tokens[tokenIndex].Position = result.To

	if board.IsFinished(result.To) {
		player.Tokens[tokenIndex].IsHome = true
		player.TokensHome++
		result.Finished = true
	} else if board.OnSharedTrack(result.To) && !board.IsSafePosition(player.Color, result.To) {
		result.Captures = captureAt(newGs, mover, result.To)
	}

	move := result.Move
	newGs.LastMove = &move
	return newGs, result, nil
}

// captureAt sends every opposing token on the mover's square back to base.
func captureAt(gs *GameState, mover, pos int) []Capture {
	color := gs.Players[mover].Color
	captures := []Capture{}
	for pi := range gs.Players {
		if pi == mover {
			continue
		}
		opponent := &gs.Players[pi]
		for ti, t := range opponent.Tokens {
			if t.InBase() || t.IsHome {
				continue
			}
			if !board.SameBoardSquare(color, pos, opponent.Color, t.Position) {
				continue
			}
			base := board.BaseSentinel(ti)
			opponent.Tokens[ti] = Token{Position: base, IsHome: false}
			captures = append(captures, Capture{Player: pi, Token: ti, From: t.Position, To: base})
		}
	}
	return captures
}

package engine

import (
	"context"

	"ludo/game"
)

// HumanInput carries a presentation layer's roll requests and token picks
// into a running match. Both calls block until the match asks for them.
type HumanInput struct {
	rolls chan struct{}
	moves chan int
}

func NewHumanInput() *HumanInput {
	return &HumanInput{
		rolls: make(chan struct{}),
		moves: make(chan int),
	}
}

// RequestRoll asks the match to roll for the human whose turn it is.
func (h *HumanInput) RequestRoll(ctx context.Context) error {
	select {
	case h.rolls <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitMove picks a token for the rolled die. An index outside the valid
// moves is rejected by the match and the same player is asked again.
func (h *HumanInput) SubmitMove(ctx context.Context, token int) error {
	select {
	case h.moves <- token:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mover decides when to roll and which token to move for one seat.
type mover interface {
	awaitRoll(ctx context.Context, gs *game.GameState) error
	chooseToken(ctx context.Context, gs *game.GameState) (int, error)
}

type humanMover struct {
	in *HumanInput
}

func (h humanMover) awaitRoll(ctx context.Context, _ *game.GameState) error {
	select {
	case <-h.in.rolls:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h humanMover) chooseToken(ctx context.Context, _ *game.GameState) (int, error) {
	select {
	case token := <-h.in.moves:
		return token, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

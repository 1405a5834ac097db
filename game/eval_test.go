package game

import (
	"testing"

	"ludo/board"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("no winner while nobody has four home", func(t *testing.T) {
		gs := newTestState()
		place(gs, 0, board.TotalSteps, board.TotalSteps, board.TotalSteps, 40)
		_, ok := Evaluate(gs)
		require.False(t, ok)
	})

	t.Run("player with all tokens home wins and ranks first", func(t *testing.T) {
		gs := newTestState()
		place(gs, 0, board.TotalSteps)
		place(gs, 2, board.TotalSteps, board.TotalSteps, board.TotalSteps, board.TotalSteps)
		place(gs, 3, board.TotalSteps, board.TotalSteps)

		outcome, ok := Evaluate(gs)
		require.True(t, ok)
		require.Equal(t, "ai-2", outcome.Winner.ID)
		require.Equal(t, []string{"ai-2", "ai-3", "user-1", "ai-1"}, ids(outcome.Rankings))
	})

	t.Run("ties keep turn order", func(t *testing.T) {
		gs := newTestState()
		place(gs, 1, board.TotalSteps)
		place(gs, 3, board.TotalSteps, board.TotalSteps, board.TotalSteps, board.TotalSteps)
		place(gs, 2, board.TotalSteps)

		outcome, ok := Evaluate(gs)
		require.True(t, ok)
		require.Equal(t, []string{"ai-3", "ai-1", "ai-2", "user-1"}, ids(outcome.Rankings))
	})

	t.Run("rankings are copies", func(t *testing.T) {
		gs := newTestState()
		place(gs, 0, board.TotalSteps, board.TotalSteps, board.TotalSteps, board.TotalSteps)
		outcome, _ := Evaluate(gs)
		outcome.Rankings[0].TokensHome = 0
		require.Equal(t, 4, gs.Players[0].TokensHome)
	})
}

func TestProgress(t *testing.T) {
	gs := newTestState()
	place(gs, 0, board.TotalSteps, 20, 3)
	require.Equal(t, 123, Progress(gs.Players[0]))
	require.Zero(t, Progress(gs.Players[1]))
}

func ids(players []Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

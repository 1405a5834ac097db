package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ludo/agent"
	"ludo/board"
	"ludo/dice"
	"ludo/experiments/metrics"
	"ludo/game"
	"ludo/store"
)

// botsOnly hands every seat to an agent and turns pacing off.
func botsOnly(d agent.Difficulty) []Option {
	opts := []Option{WithPacing(false), WithMaxTurns(10000)}
	for seat := 0; seat < board.NumColors; seat++ {
		opts = append(opts, WithAgent(seat, d))
	}
	return opts
}

func TestMatchRunsToCompletion(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	u, err := s.GetOrCreateUser(ctx)
	require.NoError(t, err)

	var updates []Update
	opts := append(botsOnly(agent.Hard),
		WithSeed(7),
		WithStore(s),
		WithCollector(metrics.NewCollector()),
		WithObserver(func(u Update) { updates = append(updates, u) }),
	)
	m, err := NewMatch(u.Identity(), opts...)
	require.NoError(t, err)

	result, err := m.Run(ctx)
	require.NoError(t, err)

	require.NotEmpty(t, result.Winner)
	require.Equal(t, game.GameOver, result.State.Phase)
	winner, ok := result.State.WinningPlayer()
	require.True(t, ok)
	require.Equal(t, board.TokensPerPlayer, winner.TokensHome)
	require.Len(t, result.Rankings, 4)
	require.Equal(t, result.Winner, result.Rankings[0].ID)

	require.Equal(t, 1, result.Stats.GamesPlayed)
	require.Equal(t, result.Winner == u.ID, result.Stats.Wins == 1)
	stored, err := s.GetStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, result.Stats, stored)

	require.Equal(t, m.ID(), result.Game.ID)
	require.Equal(t, result.Winner, result.Game.Winner)
	require.Positive(t, result.Game.TotalRolls)
	require.NotEmpty(t, result.Moves)

	t.Run("observers see every transition", func(t *testing.T) {
		require.Equal(t, EventStarted, updates[0].Event)
		require.Equal(t, EventGameOver, updates[len(updates)-1].Event)
		for _, u := range updates {
			require.Equal(t, u.State.Hash(), u.Hash)
		}
	})

	t.Run("a match runs only once", func(t *testing.T) {
		_, err := m.Run(ctx)
		require.Error(t, err)
	})
}

func TestMatchIsReproducible(t *testing.T) {
	run := func() Result {
		m, err := NewMatch(testUser, append(botsOnly(agent.Easy), WithSeed(42))...)
		require.NoError(t, err)
		result, err := m.Run(context.Background())
		require.NoError(t, err)
		return result
	}

	first, second := run(), run()
	require.Equal(t, first.Winner, second.Winner)
	require.Equal(t, first.Turns, second.Turns)
	require.Equal(t, first.State.Hash(), second.State.Hash())
}

func TestMatchTurnLimit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	opts := append(botsOnly(agent.Medium),
		WithMaxTurns(3),
		WithRoller(dice.NewScript(1)),
		WithStore(s),
	)
	m, err := NewMatch(testUser, opts...)
	require.NoError(t, err)

	result, err := m.Run(ctx)
	require.NoError(t, err)
	require.Empty(t, result.Winner)
	require.Equal(t, 4, result.Turns)

	stats, err := s.GetStats(ctx, testUser.ID)
	require.NoError(t, err)
	require.Zero(t, stats.GamesPlayed, "unfinished matches are not recorded")
}

func TestMatchCancellation(t *testing.T) {
	m, err := NewMatch(testUser, WithPacing(true), WithAgent(0, agent.Easy), WithSeed(1))
	require.NoError(t, err)
	before := m.State()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = m.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	after := m.State()
	require.Equal(t, before.Hash(), after.Hash(), "a cancelled delay must not touch the snapshot")
	require.Equal(t, game.AwaitingRoll, after.Phase)
}

func TestMatchCancellationWhileThinking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, err := NewMatch(testUser,
		WithPacing(true),
		WithAgent(0, agent.Easy),
		WithSeed(1),
		WithRoller(dice.NewScript(6)),
		WithObserver(func(u Update) {
			if u.Event == EventRolled {
				cancel()
			}
		}),
	)
	require.NoError(t, err)

	_, err = m.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	after := m.State()
	require.Equal(t, game.AwaitingMove, after.Phase, "the roll stays on the snapshot")
	require.Equal(t, 6, after.DiceValue)
	require.Equal(t, []int{0, 1, 2, 3}, after.ValidMoves)
	require.Equal(t, 1, after.TurnCount)
	require.Nil(t, after.LastMove, "no move is applied")
	for i, tok := range after.CurrentPlayer().Tokens {
		require.True(t, tok.InBase(), "token %d", i)
	}
}

func TestMatchHumanInput(t *testing.T) {
	t.Run("requires input for human seats", func(t *testing.T) {
		_, err := NewMatch(testUser)
		require.Error(t, err)
	})

	t.Run("re-prompts after an illegal token", func(t *testing.T) {
		in := NewHumanInput()
		updates := make(chan Update, 64)
		m, err := NewMatch(testUser,
			WithHumanInput(in),
			WithPacing(false),
			WithRoller(dice.NewScript(6)),
			WithObserver(func(u Update) { updates <- u }),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() {
			_, err := m.Run(ctx)
			done <- err
		}()

		expect := func(want Event) Update {
			t.Helper()
			select {
			case u := <-updates:
				require.Equal(t, want, u.Event)
				return u
			case <-time.After(5 * time.Second):
				t.Fatalf("timed out waiting for %s", want)
				return Update{}
			}
		}

		expect(EventStarted)
		require.NoError(t, in.RequestRoll(ctx))
		u := expect(EventRolled)
		require.Equal(t, []int{0, 1, 2, 3}, u.State.ValidMoves)

		require.NoError(t, in.SubmitMove(ctx, 9))
		u = expect(EventRejected)
		require.Equal(t, game.AwaitingMove, u.State.Phase)

		require.NoError(t, in.SubmitMove(ctx, 2))
		u = expect(EventMoved)
		require.True(t, u.Move.ExtraTurn)
		require.Equal(t, 0, u.State.CurrentPlayerIndex)
		require.Equal(t, 0, u.State.Players[0].Tokens[2].Position)

		cancel()
		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("match did not stop after cancel")
		}
	})
}

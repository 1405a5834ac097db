package store

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewAnonymousUser(t *testing.T) {
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	u := NewAnonymousUser(now)

	_, err := uuid.Parse(u.ID)
	require.NoError(t, err, "user id should be a uuid")
	require.Regexp(t, regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+_\d{1,4}$`), u.Username)
	require.Equal(t, now, u.CreatedAt)
}

func TestStatsApply(t *testing.T) {
	s := Stats{}.Apply(Result{Won: true, TokensHome: 4, Captures: 2})
	s = s.Apply(Result{Won: false, TokensHome: 1})

	require.Equal(t, Stats{GamesPlayed: 2, Wins: 1, Losses: 1, TotalTokensHome: 5, TotalCaptures: 2}, s)
}

func TestValidateUsername(t *testing.T) {
	name, err := ValidateUsername("  NobleWolf_7  ")
	require.NoError(t, err)
	require.Equal(t, "NobleWolf_7", name)

	_, err = ValidateUsername("   ")
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = ValidateUsername(strings.Repeat("x", MaxUsernameLength+1))
	require.ErrorIs(t, err, ErrInvalidUsername)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the same user on every call", func(t *testing.T) {
		s := NewMemoryStore()
		first, err := s.GetOrCreateUser(ctx)
		require.NoError(t, err)
		second, err := s.GetOrCreateUser(ctx)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("renames the user", func(t *testing.T) {
		s := NewMemoryStore()
		u, _ := s.GetOrCreateUser(ctx)

		renamed, err := s.RenameUser(ctx, u.ID, "RoyalAce_1")
		require.NoError(t, err)
		require.Equal(t, "RoyalAce_1", renamed.Username)

		again, _ := s.GetOrCreateUser(ctx)
		require.Equal(t, "RoyalAce_1", again.Username)

		_, err = s.RenameUser(ctx, "someone-else", "x")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("records results", func(t *testing.T) {
		s := NewMemoryStore()
		stats, err := s.GetStats(ctx, "u")
		require.NoError(t, err)
		require.Zero(t, stats)

		_, err = s.RecordResult(ctx, "u", Result{Won: true, TokensHome: 4, Captures: 3})
		require.NoError(t, err)
		stats, err = s.GetStats(ctx, "u")
		require.NoError(t, err)
		require.Equal(t, Stats{GamesPlayed: 1, Wins: 1, TotalTokensHome: 4, TotalCaptures: 3}, stats)
	})

	t.Run("honours cancelled contexts", func(t *testing.T) {
		s := NewMemoryStore()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.GetOrCreateUser(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

// Package store keeps the device-local player identity and lifetime stats.
// A match reads stats when it starts and records its result when it ends.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ludo/game"
)

const MaxUsernameLength = 32

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidUsername = errors.New("invalid username")
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the part of the user a match needs.
func (u User) Identity() game.User {
	return game.User{ID: u.ID, Username: u.Username}
}

type Stats struct {
	GamesPlayed     int `json:"gamesPlayed"`
	Wins            int `json:"wins"`
	Losses          int `json:"losses"`
	TotalTokensHome int `json:"totalTokensHome"`
	TotalCaptures   int `json:"totalCaptures"`
}

// Result is one finished match from the user's point of view.
type Result struct {
	Won        bool
	TokensHome int
	Captures   int
}

// Apply folds a match result into the stats.
func (s Stats) Apply(r Result) Stats {
	s.GamesPlayed++
	if r.Won {
		s.Wins++
	} else {
		s.Losses++
	}
	s.TotalTokensHome += r.TokensHome
	s.TotalCaptures += r.Captures
	return s
}

type Store interface {
	// GetOrCreateUser returns the device's user, creating an anonymous one
	// on first use.
	GetOrCreateUser(ctx context.Context) (User, error)
	RenameUser(ctx context.Context, userID, username string) (User, error)
	// GetStats returns zero stats for users that have not finished a match.
	GetStats(ctx context.Context, userID string) (Stats, error)
	RecordResult(ctx context.Context, userID string, result Result) (Stats, error)
	Close() error
}

// ValidateUsername trims the name and checks its length.
func ValidateUsername(username string) (string, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidUsername, MaxUsernameLength)
	}
	return name, nil
}

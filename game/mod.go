package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrNotAwaitingRoll = errors.New("not awaiting a roll")
	ErrNotAwaitingMove = errors.New("not awaiting a move")
	ErrInvalidDice     = errors.New("invalid dice value")
	ErrInvalidToken    = errors.New("invalid token index")
)

type StateHash uint64

// Mode selects who controls the three seats next to the user.
type Mode int

const (
	QuickMode   Mode = iota // user against three AI players
	OfflineMode             // same seating as quick, no network lookups
	LocalMode               // pass-and-play, every seat is human
)

var modeNames = []string{"quick", "offline", "local"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown game mode: %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// User is the identity of the human who starts a match.
type User struct {
	ID       string
	Username string
}

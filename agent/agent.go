package agent

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"ludo/game"
)

// Agent picks a token for an AI player.
type Agent interface {
	// SelectMove returns the token index to move, or false if the player has
	// no legal move for this roll and must skip the turn.
	SelectMove(player game.Player, dice int) (int, bool)
}

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = []string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty: %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// New returns the agent for a difficulty. Its choices are deterministic for
// a given rng seed.
func New(d Difficulty, rng *rand.Rand) Agent {
	switch d {
	case Easy:
		return easyAgent{rng: rng}
	case Medium:
		return mediumAgent{rng: rng}
	case Hard:
		return hardAgent{rng: rng}
	default:
		panic(fmt.Sprintf("unknown difficulty %d", int(d)))
	}
}

// NewSeeded returns the agent for a difficulty with its own seeded source.
func NewSeeded(d Difficulty, seed uint64) Agent {
	return New(d, rand.New(rand.NewSource(seed)))
}

// ThinkingTime is how long an AI player pretends to think before acting, so
// a human watching can follow the game.
func ThinkingTime(d Difficulty, rng *rand.Rand) time.Duration {
	var base, spread time.Duration
	switch d {
	case Easy:
		base, spread = 500*time.Millisecond, 500*time.Millisecond
	case Medium:
		base, spread = 800*time.Millisecond, 700*time.Millisecond
	case Hard:
		base, spread = time.Second, time.Second
	default:
		return time.Second
	}
	return base + time.Duration(rng.Int63n(int64(spread)))
}

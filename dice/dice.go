// Package dice produces die rolls for a match.
//
// Rolls come from a seeded golang.org/x/exp/rand source so that a match can
// be replayed from its seed. Script replays a fixed sequence, which is how
// tests and recorded games drive the engine.
package dice

import (
	"fmt"

	"golang.org/x/exp/rand"

	"ludo/board"
)

type Roller interface {
	// Roll returns a die face in 1..6.
	Roll() int
}

type randomRoller struct {
	rng *rand.Rand
}

// NewRoller returns a roller seeded with seed.
func NewRoller(seed uint64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRollerFrom returns a roller that draws from an existing source.
func NewRollerFrom(rng *rand.Rand) Roller {
	return &randomRoller{rng: rng}
}

func (r *randomRoller) Roll() int {
	return r.rng.Intn(board.DieFaces) + 1
}

// Script replays values in order and starts over once exhausted.
type Script struct {
	values []int
	next   int
}

func NewScript(values ...int) *Script {
	if len(values) == 0 {
		panic("script needs at least one value")
	}
	for _, v := range values {
		if v < 1 || v > board.DieFaces {
			panic(fmt.Sprintf("invalid die face %d", v))
		}
	}
	return &Script{values: values}
}

func (s *Script) Roll() int {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Rolled is the number of values handed out since the last wrap.
func (s *Script) Rolled() int {
	return s.next
}

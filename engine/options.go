package engine

import (
	"golang.org/x/exp/rand"

	"ludo/agent"
	"ludo/dice"
	"ludo/experiments/metrics"
	"ludo/game"
	"ludo/store"
)

type Option func(m *Match)

func WithMode(mode game.Mode) Option {
	return func(m *Match) {
		m.mode = mode
	}
}

// WithDifficulty sets the strategy of every AI seat without its own agent.
func WithDifficulty(d agent.Difficulty) Option {
	return func(m *Match) {
		m.difficulty = d
	}
}

// WithAgent hands a seat to an agent, human seats included.
func WithAgent(seat int, d agent.Difficulty) Option {
	return func(m *Match) {
		if seat >= 0 {
			m.seatAgents[seat] = d
		}
	}
}

func WithRoller(r dice.Roller) Option {
	return func(m *Match) {
		if r != nil {
			m.roller = r
		}
	}
}

// WithSeed makes dice and AI choices reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Match) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPacing turns the AI roll and thinking delays on or off.
func WithPacing(enabled bool) Option {
	return func(m *Match) {
		if enabled {
			m.pacing = DefaultPacing
		} else {
			m.pacing = Pacing{}
		}
	}
}

func WithStore(s store.Store) Option {
	return func(m *Match) {
		m.store = s
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(m *Match) {
		if c != nil {
			m.collector = c
		}
	}
}

func WithObserver(o Observer) Option {
	return func(m *Match) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(m *Match) {
		if turns > 0 {
			m.maxTurns = turns
		}
	}
}

// WithHumanInput routes every human seat through in.
func WithHumanInput(in *HumanInput) Option {
	return func(m *Match) {
		m.human = in
	}
}

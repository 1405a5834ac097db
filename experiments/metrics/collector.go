package metrics

import (
	"sync/atomic"
	"time"
)

type MoveMetric struct {
	Step      int
	Turn      int
	Player    int // seat index
	Dice      int
	Token     int // -1 when the roll was skipped
	From      int
	To        int
	Captures  int
	Finished  bool
	ExtraTurn bool
	Skipped   bool
}

type GameMetric struct {
	ID             string
	Mode           string
	StartingPlayer int    // seat index
	Winner         string // player ID, empty when the turn limit was hit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
	TotalRolls     int
	TotalMoves     int
	TotalCaptures  int
	Sixes          int
}

type Collector interface {
	Start(id, mode string, startingPlayer int)
	AddRoll(dice int)
	AddMove(m MoveMetric)
	Complete(winner string, turns int) (GameMetric, []MoveMetric)
}

type collector struct {
	id             string
	mode           string
	startingPlayer int
	startTime      time.Time
	rolls          atomic.Int32
	sixes          atomic.Int32
	captures       atomic.Int32
	moves          []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(id, mode string, startingPlayer int) {
	m.startTime = time.Now()
	m.id = id
	m.mode = mode
	m.startingPlayer = startingPlayer
	m.moves = nil
	m.rolls.Store(0)
	m.sixes.Store(0)
	m.captures.Store(0)
}

func (m *collector) AddRoll(dice int) {
	m.rolls.Add(1)
	if dice == 6 {
		m.sixes.Add(1)
	}
}

// AddMove records a move or a skipped roll. Step is assigned here.
func (m *collector) AddMove(mm MoveMetric) {
	mm.Step = len(m.moves) + 1
	m.captures.Add(int32(mm.Captures))
	m.moves = append(m.moves, mm)
}

func (m *collector) Complete(winner string, turns int) (GameMetric, []MoveMetric) {
	end := time.Now()
	played := 0
	for _, mm := range m.moves {
		if !mm.Skipped {
			played++
		}
	}
	return GameMetric{
		ID:             m.id,
		Mode:           m.mode,
		StartingPlayer: m.startingPlayer,
		Winner:         winner,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalTurns:     turns,
		TotalRolls:     int(m.rolls.Load()),
		TotalMoves:     played,
		TotalCaptures:  int(m.captures.Load()),
		Sixes:          int(m.sixes.Load()),
	}, m.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(id, mode string, startingPlayer int) {}
func (m *dummyCollector) AddRoll(dice int)                          {}
func (m *dummyCollector) AddMove(mm MoveMetric)                     {}
func (m *dummyCollector) Complete(winner string, turns int) (GameMetric, []MoveMetric) {
	return GameMetric{}, nil
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ludo/agent"
	"ludo/dice"
	"ludo/experiments/metrics"
	"ludo/game"
	"ludo/meta"
	"ludo/store"
)

// Pacing slows AI seats down so a person can follow the match.
type Pacing struct {
	Roll     time.Duration // before an AI seat rolls
	Thinking bool          // AI seats wait agent.ThinkingTime before moving
	Skip     time.Duration // after a roll with no legal move
	Turn     time.Duration // before play passes to the next seat
}

var DefaultPacing = Pacing{
	Roll:     time.Second,
	Thinking: true,
	Skip:     time.Second,
	Turn:     500 * time.Millisecond,
}

type Event int

const (
	EventStarted Event = iota
	EventRolled
	EventSkipped
	EventMoved
	EventRejected
	EventGameOver
	EventTurnLimit
)

var eventNames = []string{"started", "rolled", "skipped", "moved", "rejected", "game_over", "turn_limit"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

// Update is published after every transition. State is a private copy.
type Update struct {
	Event Event
	Roll  *RollOutcome
	Move  *MoveOutcome
	State *game.GameState
	Hash  game.StateHash
}

// Observer is called synchronously on the match goroutine and must not block.
type Observer func(Update)

type Result struct {
	ID       string
	Winner   string // player ID, empty when the turn limit was hit
	Rankings []game.Player
	Turns    int
	State    *game.GameState
	Stats    store.Stats // the user's stats after this match
	Game     metrics.GameMetric
	Moves    []metrics.MoveMetric
}

// Match runs one game from the first roll to game over. It is the only
// writer of its state.
type Match struct {
	id         string
	user       game.User
	mode       game.Mode
	difficulty agent.Difficulty
	seatAgents map[int]agent.Difficulty
	rng        *rand.Rand
	roller     dice.Roller
	pacing     Pacing
	store      store.Store
	collector  metrics.Collector
	observers  []Observer
	maxTurns   int
	human      *HumanInput

	state    *game.GameState
	movers   []mover
	captures []int
	ran      bool
}

var errNoAgentMove = errors.New("agent returned no move")

func NewMatch(user game.User, options ...Option) (*Match, error) {
	m := &Match{ // Default values
		id:         uuid.NewString(),
		user:       user,
		mode:       game.QuickMode,
		difficulty: agent.Medium,
		seatAgents: map[int]agent.Difficulty{},
		pacing:     DefaultPacing,
		collector:  metrics.NewDummyCollector(),
		maxTurns:   meta.MAX_TURNS,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.roller == nil {
		m.roller = dice.NewRollerFrom(m.rng)
	}

	m.state = game.NewGameState(user, m.mode)
	m.captures = make([]int, len(m.state.Players))
	m.movers = make([]mover, len(m.state.Players))
	for seat, p := range m.state.Players {
		d, assigned := m.seatAgents[seat]
		switch {
		case assigned:
		case p.IsAI:
			d = m.difficulty
		case m.human != nil:
			m.movers[seat] = humanMover{in: m.human}
			continue
		default:
			return nil, fmt.Errorf("seat %d (%s) is human but the match has no human input", seat, p.Username)
		}
		m.movers[seat] = botMover{
			agent:      agent.New(d, m.rng),
			difficulty: d,
			rng:        m.rng,
			pacing:     m.pacing,
		}
	}
	return m, nil
}

func (m *Match) ID() string {
	return m.id
}

// State returns a copy of the current snapshot. Call it only when Run is not
// running.
func (m *Match) State() *game.GameState {
	return m.state.Copy()
}

// Run plays until a player wins, the turn limit is hit or ctx is done. A
// cancelled delay leaves the last snapshot untouched.
func (m *Match) Run(ctx context.Context) (Result, error) {
	if m.ran {
		return Result{}, fmt.Errorf("match %s has already been run", m.id)
	}
	m.ran = true

	var stats store.Stats
	if m.store != nil {
		var err error
		stats, err = m.store.GetStats(ctx, m.user.ID)
		if err != nil {
			return Result{}, fmt.Errorf("read stats: %w", err)
		}
		log.Info().Msgf("match %s: %s has won %d of %d games", m.id, m.user.Username, stats.Wins, stats.GamesPlayed)
	}

	m.collector.Start(m.id, m.mode.String(), m.state.CurrentPlayerIndex)
	log.Info().Msgf("match %s: %s mode, %s is starting", m.id, m.mode, m.state.CurrentPlayer().Username)
	m.publish(EventStarted, nil, nil)

	for !m.state.IsTerminal() {
		if m.state.TurnCount > m.maxTurns {
			log.Warn().Msgf("match %s: stopped after %d turns with no winner", m.id, m.maxTurns)
			m.publish(EventTurnLimit, nil, nil)
			break
		}
		if err := m.playTurn(ctx); err != nil {
			log.Info().Msgf("match %s: stopped on turn %d: %v", m.id, m.state.TurnCount, err)
			return Result{}, err
		}
	}

	gameMetric, moveMetrics := m.collector.Complete(m.state.Winner, m.state.TurnCount)
	result := Result{
		ID:       m.id,
		Winner:   m.state.Winner,
		Rankings: m.state.Rankings,
		Turns:    m.state.TurnCount,
		State:    m.state.Copy(),
		Stats:    stats,
		Game:     gameMetric,
		Moves:    moveMetrics,
	}

	if m.state.IsTerminal() && m.store != nil {
		updated, err := m.recordStats(ctx)
		if err != nil {
			return result, err
		}
		result.Stats = updated
	}
	return result, nil
}

func (m *Match) playTurn(ctx context.Context) error {
	seat := m.state.CurrentPlayerIndex
	mv := m.movers[seat]
	if err := mv.awaitRoll(ctx, m.state); err != nil {
		return err
	}

	turn := m.state.TurnCount
	next, roll, err := Roll(m.state, m.roller.Roll())
	if err != nil {
		return err
	}
	m.state = next
	m.collector.AddRoll(roll.Dice)

	if roll.Skipped {
		log.Debug().Msgf("match %s: %s rolled %d and has no move", m.id, m.state.Players[seat].Username, roll.Dice)
		m.collector.AddMove(metrics.MoveMetric{Turn: turn, Player: seat, Dice: roll.Dice, Token: -1, Skipped: true})
		m.publish(EventSkipped, &roll, nil)
		return sleep(ctx, m.pacing.Skip)
	}
	m.publish(EventRolled, &roll, nil)

	for {
		token, err := mv.chooseToken(ctx, m.state)
		if err != nil {
			return err
		}
		moved, outcome, err := Move(m.state, token)
		if errors.Is(err, game.ErrIllegalMove) {
			log.Warn().Msgf("match %s: rejected token %d for %s: %v", m.id, token, m.state.Players[seat].Username, err)
			m.publish(EventRejected, &roll, nil)
			continue
		}
		if err != nil {
			return err
		}

		m.state = moved
		m.captures[seat] += len(outcome.Captures)
		m.collector.AddMove(metrics.MoveMetric{
			Turn:      turn,
			Player:    seat,
			Dice:      outcome.Dice,
			Token:     outcome.Token,
			From:      outcome.From,
			To:        outcome.To,
			Captures:  len(outcome.Captures),
			Finished:  outcome.Finished,
			ExtraTurn: outcome.ExtraTurn,
		})
		m.publish(EventMoved, &roll, &outcome)

		switch {
		case outcome.GameOver:
			log.Info().Msgf("match %s: %s wins on turn %d", m.id, m.state.Players[seat].Username, m.state.TurnCount)
			m.publish(EventGameOver, &roll, &outcome)
			return nil
		case outcome.ExtraTurn:
			return nil
		default:
			return sleep(ctx, m.pacing.Turn)
		}
	}
}

func (m *Match) recordStats(ctx context.Context) (store.Stats, error) {
	seat := m.state.PlayerIndex(m.user.ID)
	if seat < 0 {
		return store.Stats{}, fmt.Errorf("user %s is not seated in match %s", m.user.ID, m.id)
	}
	p := m.state.Players[seat]
	updated, err := m.store.RecordResult(ctx, m.user.ID, store.Result{
		Won:        m.state.Winner == m.user.ID,
		TokensHome: p.TokensHome,
		Captures:   m.captures[seat],
	})
	if err != nil {
		return store.Stats{}, fmt.Errorf("record stats: %w", err)
	}
	return updated, nil
}

func (m *Match) publish(event Event, roll *RollOutcome, move *MoveOutcome) {
	if len(m.observers) == 0 {
		return
	}
	u := Update{
		Event: event,
		Roll:  roll,
		Move:  move,
		State: m.state.Copy(),
		Hash:  m.state.Hash(),
	}
	for _, o := range m.observers {
		o(u)
	}
}

type botMover struct {
	agent      agent.Agent
	difficulty agent.Difficulty
	rng        *rand.Rand
	pacing     Pacing
}

func (b botMover) awaitRoll(ctx context.Context, _ *game.GameState) error {
	return sleep(ctx, b.pacing.Roll)
}

func (b botMover) chooseToken(ctx context.Context, gs *game.GameState) (int, error) {
	if b.pacing.Thinking {
		if err := sleep(ctx, agent.ThinkingTime(b.difficulty, b.rng)); err != nil {
			return 0, err
		}
	}
	token, ok := b.agent.SelectMove(gs.CurrentPlayer(), gs.DiceValue)
	if !ok {
		return 0, fmt.Errorf("%w for %d", errNoAgentMove, gs.DiceValue)
	}
	return token, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"ludo/board"
)

// Phase is the turn controller's position within a turn.
type Phase int

const (
	AwaitingRoll Phase = iota
	AwaitingMove
	TurnComplete
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingRoll:
		return "awaiting_roll"
	case AwaitingMove:
		return "awaiting_move"
	case TurnComplete:
		return "turn_complete"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Token is one of a player's four pieces. Position is relative to the
// owner's start square; see package board for the ranges.
type Token struct {
	Position int  `json:"position"`
	IsHome   bool `json:"isHome"`
}

func (t Token) InBase() bool {
	return board.InBase(t.Position)
}

// Player is a seat at the table. Human and AI seats share this record and
// differ only by IsAI.
type Player struct {
	ID         string                       `json:"id"`
	Username   string                       `json:"username"`
	Color      board.Color                  `json:"color"`
	IsAI       bool                         `json:"isAI"`
	Tokens     [board.TokensPerPlayer]Token `json:"tokens"`
	TokensHome int                          `json:"tokensHome"`
}

func newPlayer(id, username string, color board.Color, isAI bool) Player {
	p := Player{
		ID:       id,
		Username: username,
		Color:    color,
		IsAI:     isAI,
	}
	for i := range p.Tokens {
		p.Tokens[i] = Token{Position: board.BaseSentinel(i)}
	}
	return p
}

// GameState is an immutable snapshot of a match. Operations that change the
// match return a new snapshot and leave the receiver untouched.
type GameState struct {
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	DiceValue          int      `json:"diceValue"` // 0 when no die has been rolled this turn
	ValidMoves         []int    `json:"validMoves"`
	TurnCount          int      `json:"turnCount"`
	Winner             string   `json:"winner"` // player ID, "" while the match is running
	Rankings           []Player `json:"rankings"`
	Phase              Phase    `json:"phase"`
	Mode               Mode     `json:"mode"`
	LastMove           *Move    `json:"lastMove,omitempty"`
}

// NewGameState seats the user as red and three opponents after them. The
// opponents are AI players unless the match is pass-and-play.
func NewGameState(user User, mode Mode) *GameState {
	isAI := mode != LocalMode
	players := []Player{
		newPlayer(user.ID, user.Username, board.Red, false),
		newPlayer("ai-1", "AI Player 1", board.Green, isAI),
		newPlayer("ai-2", "AI Player 2", board.Yellow, isAI),
		newPlayer("ai-3", "AI Player 3", board.Blue, isAI),
	}
	return &GameState{
		Players:    players,
		ValidMoves: []int{},
		TurnCount:  1,
		Phase:      AwaitingRoll,
		Mode:       mode,
	}
}

func (gs GameState) Copy() *GameState {
	// Player holds its tokens in an array, so copying the slice is deep.
	playersCopy := make([]Player, len(gs.Players))
	copy(playersCopy, gs.Players)

	validMovesCopy := make([]int, len(gs.ValidMoves))
	copy(validMovesCopy, gs.ValidMoves)

	var rankingsCopy []Player
	if gs.Rankings != nil {
		rankingsCopy = make([]Player, len(gs.Rankings))
		copy(rankingsCopy, gs.Rankings)
	}

	return &GameState{
		Players:            playersCopy,
		CurrentPlayerIndex: gs.CurrentPlayerIndex,
		DiceValue:          gs.DiceValue,
		ValidMoves:         validMovesCopy,
		TurnCount:          gs.TurnCount,
		Winner:             gs.Winner,
		Rankings:           rankingsCopy,
		Phase:              gs.Phase,
		Mode:               gs.Mode,
		LastMove:           gs.LastMove, // Move is never modified after creation
	}
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (gs *GameState) CurrentPlayer() Player {
	return gs.Players[gs.CurrentPlayerIndex]
}

func (gs *GameState) NextPlayerIndex() int {
	return (gs.CurrentPlayerIndex + 1) % len(gs.Players)
}

func (gs *GameState) PlayerIndex(id string) int {
	for i, p := range gs.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// WinningPlayer returns the winner once the match is over.
func (gs *GameState) WinningPlayer() (Player, bool) {
	if gs.Winner == "" {
		return Player{}, false
	}
	i := gs.PlayerIndex(gs.Winner)
	if i < 0 {
		return Player{}, false
	}
	return gs.Players[i], true
}

func (gs *GameState) IsTerminal() bool {
	return gs.Phase == GameOver || gs.Winner != ""
}

func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayerIndex))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase))
	binary.Write(hasher, binary.LittleEndian, int64(gs.DiceValue))
	binary.Write(hasher, binary.LittleEndian, int64(gs.TurnCount))

	for _, p := range gs.Players {
		for _, t := range p.Tokens {
			binary.Write(hasher, binary.LittleEndian, int64(t.Position))
		}
		binary.Write(hasher, binary.LittleEndian, int64(p.TokensHome))
	}

	return StateHash(hasher.Sum64())
}

package game

import (
	"sort"

	"ludo/board"
)

// Outcome is the result of a finished match.
type Outcome struct {
	Winner   Player
	Rankings []Player
}

// Evaluate returns the winner and rankings once a player has all tokens home.
// The first finished player in turn order wins; rankings order players by
// tokens home and keep turn order among equals.
func Evaluate(gs *GameState) (Outcome, bool) {
	winner := -1
	for i, p := range gs.Players {
		if p.TokensHome == board.TokensPerPlayer {
			winner = i
			break
		}
	}
	if winner < 0 {
		return Outcome{}, false
	}

	rankings := make([]Player, len(gs.Players))
	copy(rankings, gs.Players)
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TokensHome > rankings[j].TokensHome
	})

	return Outcome{Winner: gs.Players[winner], Rankings: rankings}, true
}

// Progress scores how far along a player is: 100 per finished token plus the
// relative position of every token on the board.
func Progress(p Player) int {
	score := p.TokensHome * 100
	for _, t := range p.Tokens {
		if !t.InBase() && !t.IsHome {
			score += t.Position
		}
	}
	return score
}

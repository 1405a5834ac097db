package agent

import (
	"golang.org/x/exp/rand"

	"ludo/board"
	"ludo/game"
)

// Hard agent weights.
const (
	exitBaseBonus  = 1000.0
	finishBonus    = 800.0
	safeBonus      = 300.0
	positionWeight = 10.0
	nearHomeBonus  = 200.0
	nearHomeSteps  = 10
	spreadWeight   = 50.0
)

type easyAgent struct {
	rng *rand.Rand
}

func (a easyAgent) SelectMove(player game.Player, dice int) (int, bool) {
	valid := game.ValidMoves(player, dice)
	if len(valid) == 0 {
		return 0, false
	}
	return valid[a.rng.Intn(len(valid))], true
}

type mediumAgent struct {
	rng *rand.Rand
}

func (a mediumAgent) SelectMove(player game.Player, dice int) (int, bool) {
	valid := game.ValidMoves(player, dice)
	if len(valid) == 0 {
		return 0, false
	}

	if dice == board.DieFaces {
		for _, i := range valid {
			if player.Tokens[i].InBase() {
				return i, true
			}
		}
	}

	best := -1
	for _, i := range valid {
		t := player.Tokens[i]
		if t.InBase() {
			continue
		}
		if best < 0 || t.Position > player.Tokens[best].Position {
			best = i
		}
	}
	if best >= 0 {
		return best, true
	}

	return valid[a.rng.Intn(len(valid))], true
}

type hardAgent struct {
	rng *rand.Rand
}

type scoredMove struct {
	token    int
	exitBase bool
	score    float64
}

// better orders leaving base above every other move, then by score.
func (m scoredMove) better(other scoredMove) bool {
	if m.exitBase != other.exitBase {
		return m.exitBase
	}
	return m.score > other.score
}

func (a hardAgent) SelectMove(player game.Player, dice int) (int, bool) {
	valid := game.ValidMoves(player, dice)
	if len(valid) == 0 {
		return 0, false
	}

	var best scoredMove
	for n, i := range valid {
		m := a.score(player, i, dice)
		if n == 0 || m.better(best) {
			best = m
		}
	}
	return best.token, true
}

func (a hardAgent) score(player game.Player, i, dice int) scoredMove {
	t := player.Tokens[i]
	dest := game.Destination(t, dice)
	m := scoredMove{token: i, exitBase: t.InBase()}

	if m.exitBase {
		m.score += exitBaseBonus
	}
	if board.IsFinished(dest) {
		m.score += finishBonus
	}
	if board.IsSafePosition(player.Color, dest) {
		m.score += safeBonus
	}
	if !t.InBase() {
		m.score += positionWeight * float64(t.Position)
	}
	if !board.IsFinished(dest) && board.StepsToFinish(dest) <= nearHomeSteps {
		m.score += nearHomeBonus
	}
	m.score += spreadWeight * float64(tokensAhead(player, i))
	m.score += a.rng.Float64()
	return m
}

// tokensAhead counts the player's other tokens on the board further along
// than token i. Base tokens are never ahead of anything.
func tokensAhead(player game.Player, i int) int {
	pos := player.Tokens[i].Position
	n := 0
	for j, t := range player.Tokens {
		if j == i || t.IsHome || t.InBase() {
			continue
		}
		if t.Position > pos {
			n++
		}
	}
	return n
}

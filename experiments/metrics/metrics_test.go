package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("match-1", "quick", 0)

	c.AddRoll(3)
	c.AddMove(MoveMetric{Turn: 1, Player: 0, Dice: 3, Token: -1, Skipped: true})
	c.AddRoll(6)
	c.AddMove(MoveMetric{Turn: 2, Player: 1, Dice: 6, Token: 0, From: -1, To: 0, ExtraTurn: true})
	c.AddRoll(4)
	c.AddMove(MoveMetric{Turn: 2, Player: 1, Dice: 4, Token: 0, From: 0, To: 4, Captures: 2})

	game, moves := c.Complete("ai-1", 3)
	require.Equal(t, "match-1", game.ID)
	require.Equal(t, "quick", game.Mode)
	require.Equal(t, "ai-1", game.Winner)
	require.Equal(t, 3, game.TotalTurns)
	require.Equal(t, 3, game.TotalRolls)
	require.Equal(t, 2, game.TotalMoves)
	require.Equal(t, 2, game.TotalCaptures)
	require.Equal(t, 1, game.Sixes)
	require.False(t, game.EndTime.Before(game.StartTime))

	require.Len(t, moves, 3)
	for i, m := range moves {
		require.Equal(t, i+1, m.Step)
	}
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("x", "quick", 0)
	c.AddRoll(6)
	c.AddMove(MoveMetric{})
	game, moves := c.Complete("w", 1)
	require.Zero(t, game)
	require.Empty(t, moves)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "difficulty")
	require.NoError(t, err)

	require.NoError(t, w.WriteMatchupConfigs([]MatchupConfig{{ID: 1, Challenger: "hard", Field: "easy"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 1, Matchup: 1, ChallengerSeat: 2, ChallengerWon: true, ChallengerProgress: 400,
		GameMetric: GameMetric{ID: "m", Winner: "ai-2", TotalTurns: 120},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Dice: 6, Token: 0}}}))
	require.NoError(t, w.WriteSummary([]MatchupSummary{{Matchup: 1, Games: 1, ChallengerWins: 1, WinRate: 1}}))

	configs := readCSV(t, filepath.Join(w.Dir(), "matchup_configs.csv"))
	require.Equal(t, [][]string{{"id", "challenger", "field"}, {"1", "hard", "easy"}}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, "challenger_won", games[0][5])
	require.Equal(t, "true", games[1][5])
	require.Equal(t, "ai-2", games[1][7])
	require.Equal(t, "120", games[1][11])
	require.Equal(t, "challenger_progress", games[0][16])
	require.Equal(t, "400", games[1][16])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)

	data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.json"))
	require.NoError(t, err)
	var summaries []MatchupSummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Equal(t, 1, summaries[0].ChallengerWins)
}

func TestWriterReportsFileErrors(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "difficulty")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(w.Dir()))

	err = w.WriteGameRecords([]GameRecord{{ID: 1}})
	require.ErrorContains(t, err, "game_records.csv")
	err = w.WriteSummary(nil)
	require.ErrorContains(t, err, "failed to write summary")
}

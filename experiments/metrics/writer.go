package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchupConfig struct {
	ID         int
	Challenger string // difficulty of the single challenger seat
	Field      string // difficulty of the other three seats
}

type GameRecord struct {
	ID                 int
	Matchup            int // MatchupConfig.ID
	ChallengerSeat     int
	ChallengerWon      bool
	ChallengerProgress int // game.Progress of the challenger at the end
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchupSummary aggregates the games of one matchup.
type MatchupSummary struct {
	Matchup        int     `json:"matchup"`
	Challenger     string  `json:"challenger"`
	Field          string  `json:"field"`
	Games          int     `json:"games"`
	ChallengerWins int     `json:"challengerWins"`
	WinRate        float64 `json:"winRate"`
	WinRateStdErr  float64 `json:"winRateStdErr"`
	MeanTurns      float64 `json:"meanTurns"`
	StdDevTurns    float64 `json:"stdDevTurns"`
	MedianTurns    float64 `json:"medianTurns"`
	MeanCaptures   float64 `json:"meanCaptures"`
	MeanProgress   float64 `json:"meanProgress"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchupConfigs(configs []MatchupConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Challenger,
			config.Field,
		})
	}
	return w.writeCSV("matchup_configs.csv", []string{"id", "challenger", "field"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "matchup", "match_id", "mode", "challenger_seat", "challenger_won", "starting_player",
		"winner", "start_time", "end_time", "duration", "turns", "rolls", "moves", "captures", "sixes",
		"challenger_progress",
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Matchup),
			record.GameMetric.ID,
			record.Mode,
			strconv.Itoa(record.ChallengerSeat),
			strconv.FormatBool(record.ChallengerWon),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalTurns),
			strconv.Itoa(record.TotalRolls),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.TotalCaptures),
			strconv.Itoa(record.Sixes),
			strconv.Itoa(record.ChallengerProgress),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{
		"game", "step", "turn", "player", "dice", "token", "from", "to",
		"captures", "finished", "extra_turn", "skipped",
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Dice),
			strconv.Itoa(record.Token),
			strconv.Itoa(record.From),
			strconv.Itoa(record.To),
			strconv.Itoa(record.Captures),
			strconv.FormatBool(record.Finished),
			strconv.FormatBool(record.ExtraTurn),
			strconv.FormatBool(record.Skipped),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSummary(summaries []MatchupSummary) error {
	path := filepath.Join(w.baseDir, "summary.json")
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

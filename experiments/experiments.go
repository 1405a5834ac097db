package experiments

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"ludo/agent"
	"ludo/board"
	"ludo/engine"
	"ludo/experiments/metrics"
	"ludo/game"
	"ludo/meta"
)

type Options struct {
	Games      int // per matchup
	Workers    int
	MaxTurns   int
	Seed       uint64 // game i of the experiment uses Seed+i
	ResultsDir string // records are not written when empty
}

func DefaultOptions() Options {
	return Options{
		Games:      meta.GAMES_PER_MATCHUP,
		Workers:    meta.GO_ROUTINES,
		MaxTurns:   meta.MAX_TURNS,
		Seed:       1,
		ResultsDir: meta.RESULTS_DIR,
	}
}

// Matchup puts one challenger against three copies of the field.
type Matchup struct {
	ID         int
	Challenger agent.Difficulty
	Field      agent.Difficulty
}

func (m Matchup) config() metrics.MatchupConfig {
	return metrics.MatchupConfig{ID: m.ID, Challenger: m.Challenger.String(), Field: m.Field.String()}
}

// DifficultyMatchups pairs every difficulty against every other one.
func DifficultyMatchups() []Matchup {
	difficulties := []agent.Difficulty{agent.Easy, agent.Medium, agent.Hard}
	matchups := []Matchup{}
	for _, challenger := range difficulties {
		for _, field := range difficulties {
			if challenger == field {
				continue
			}
			matchups = append(matchups, Matchup{ID: len(matchups) + 1, Challenger: challenger, Field: field})
		}
	}
	return matchups
}

type Report struct {
	Dir       string // where records were written, if anywhere
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []metrics.MatchupSummary
}

func RunDifficultyExperiment(ctx context.Context, opts Options) (Report, error) {
	return Run(ctx, "difficulty", DifficultyMatchups(), opts)
}

type job struct {
	id             int
	matchup        Matchup
	challengerSeat int
	seed           uint64
}

type outcome struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
	err   error
}

// Run plays opts.Games games per matchup on opts.Workers goroutines. The
// challenger rotates through the seats so no side keeps the first roll.
func Run(ctx context.Context, name string, matchups []Matchup, opts Options) (Report, error) {
	if opts.Games <= 0 || opts.Workers <= 0 {
		return Report{}, fmt.Errorf("experiment needs positive games and workers, got %d and %d", opts.Games, opts.Workers)
	}

	jobs := []job{}
	for _, m := range matchups {
		for i := 0; i < opts.Games; i++ {
			id := len(jobs) + 1
			jobs = append(jobs, job{
				id:             id,
				matchup:        m,
				challengerSeat: i % board.NumColors,
				seed:           opts.Seed + uint64(id),
			})
		}
	}

	log.Info().Msgf("starting %s experiment: %d matchups, %d games", name, len(matchups), len(jobs))

	results := make([]outcome, len(jobs))
	task := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range task {
				record, moves, err := runGame(ctx, j, opts.MaxTurns)
				results[j.id-1] = outcome{game: record, moves: moves, err: err}
				if err == nil {
					log.Debug().Msgf("game %d of %d (matchup %d) won by %s", j.id, len(jobs), j.matchup.ID, record.Winner)
				}
			}
		}()
	}

feed:
	for _, j := range jobs {
		select {
		case task <- j:
		case <-ctx.Done():
			break feed
		}
	}
	close(task)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{}
	for _, r := range results {
		if r.err != nil {
			return Report{}, r.err
		}
		report.Games = append(report.Games, r.game)
		report.Moves = append(report.Moves, r.moves...)
	}
	report.Summaries = Summarize(matchups, report.Games)

	for _, s := range report.Summaries {
		log.Info().Msgf("matchup %d: %s vs %s won %d of %d (%.1f%%), %.0f turns on average",
			s.Matchup, s.Challenger, s.Field, s.ChallengerWins, s.Games, 100*s.WinRate, s.MeanTurns)
	}
	log.Info().Msgf("completed %s experiment", name)

	if opts.ResultsDir == "" {
		return report, nil
	}
	dir, err := write(name, opts.ResultsDir, matchups, report)
	if err != nil {
		return Report{}, err
	}
	report.Dir = dir
	return report, nil
}

// runGame executes a single bot-only match.
func runGame(ctx context.Context, j job, maxTurns int) (metrics.GameRecord, []metrics.MoveRecord, error) {
	user := game.User{ID: "bot-0", Username: "Bot 0"}
	options := []engine.Option{
		engine.WithMode(game.QuickMode),
		engine.WithPacing(false),
		engine.WithSeed(j.seed),
		engine.WithMaxTurns(maxTurns),
		engine.WithCollector(metrics.NewCollector()),
	}
	for seat := 0; seat < board.NumColors; seat++ {
		d := j.matchup.Field
		if seat == j.challengerSeat {
			d = j.matchup.Challenger
		}
		options = append(options, engine.WithAgent(seat, d))
	}

	m, err := engine.NewMatch(user, options...)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", j.id, err)
	}
	result, err := m.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", j.id, err)
	}

	record := metrics.GameRecord{
		ID:                 j.id,
		Matchup:            j.matchup.ID,
		ChallengerSeat:     j.challengerSeat,
		ChallengerWon:      result.Winner != "" && result.State.PlayerIndex(result.Winner) == j.challengerSeat,
		ChallengerProgress: game.Progress(result.State.Players[j.challengerSeat]),
		GameMetric:         result.Game,
	}
	moves := make([]metrics.MoveRecord, len(result.Moves))
	for i, mm := range result.Moves {
		moves[i] = metrics.MoveRecord{Game: j.id, MoveMetric: mm}
	}
	return record, moves, nil
}

// Summarize computes per matchup win rates and game lengths.
func Summarize(matchups []Matchup, records []metrics.GameRecord) []metrics.MatchupSummary {
	byMatchup := map[int][]metrics.GameRecord{}
	for _, r := range records {
		byMatchup[r.Matchup] = append(byMatchup[r.Matchup], r)
	}

	summaries := []metrics.MatchupSummary{}
	for _, m := range matchups {
		games := byMatchup[m.ID]
		if len(games) == 0 {
			continue
		}

		wins := make([]float64, len(games))
		turns := make([]float64, len(games))
		captures := make([]float64, len(games))
		progress := make([]float64, len(games))
		won := 0
		for i, g := range games {
			if g.ChallengerWon {
				wins[i] = 1
				won++
			}
			turns[i] = float64(g.TotalTurns)
			captures[i] = float64(g.TotalCaptures)
			progress[i] = float64(g.ChallengerProgress)
		}

		winRate, winStd := meanStdDev(wins)
		meanTurns, stdTurns := meanStdDev(turns)
		sort.Float64s(turns)

		summaries = append(summaries, metrics.MatchupSummary{
			Matchup:        m.ID,
			Challenger:     m.Challenger.String(),
			Field:          m.Field.String(),
			Games:          len(games),
			ChallengerWins: won,
			WinRate:        winRate,
			WinRateStdErr:  stat.StdErr(winStd, float64(len(games))),
			MeanTurns:      meanTurns,
			StdDevTurns:    stdTurns,
			MedianTurns:    stat.Quantile(0.5, stat.Empirical, turns, nil),
			MeanCaptures:   stat.Mean(captures, nil),
			MeanProgress:   stat.Mean(progress, nil),
		})
	}
	return summaries
}

// meanStdDev is stat.MeanStdDev with a zero deviation for fewer than two
// samples, where gonum returns NaN.
func meanStdDev(x []float64) (float64, float64) {
	mean, std := stat.MeanStdDev(x, nil)
	if len(x) < 2 || math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

func write(name, root string, matchups []Matchup, report Report) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := make([]metrics.MatchupConfig, len(matchups))
	for i, m := range matchups {
		configs[i] = m.config()
	}
	if err := writer.WriteMatchupConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored matchup configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummary(report.Summaries); err != nil {
		return "", err
	}
	log.Info().Msgf("stored summary in %s", writer.Dir())
	return writer.Dir(), nil
}

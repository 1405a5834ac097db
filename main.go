package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"ludo/board"
	"ludo/config"
	"ludo/engine"
	"ludo/experiments"
	"ludo/store/sqlite"
)

func main() {
	configPath := flag.String("config", "ludo.yaml", "Path to an optional YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] experiment|autoplay\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch flag.Arg(0) {
	case "experiment":
		err = runExperiment(ctx, cfg)
	case "autoplay", "":
		err = runAutoplay(ctx, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func runExperiment(ctx context.Context, cfg config.Config) error {
	opts := experiments.DefaultOptions()
	opts.Games = cfg.Experiment.Games
	opts.Workers = cfg.Experiment.Workers
	opts.MaxTurns = cfg.MaxTurns
	opts.ResultsDir = cfg.Experiment.ResultsDir
	if cfg.Seed != 0 {
		opts.Seed = cfg.Seed
	}
	report, err := experiments.RunDifficultyExperiment(ctx, opts)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", report.Dir)
	return nil
}

// runAutoplay plays one match for the device user, with their seat handed
// to an agent, and records the result in the stats database.
func runAutoplay(ctx context.Context, cfg config.Config) error {
	s, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	user, err := s.GetOrCreateUser(ctx)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	options := []engine.Option{
		engine.WithMode(cfg.Mode),
		engine.WithDifficulty(cfg.Difficulty),
		engine.WithPacing(cfg.Pacing),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithStore(s),
		engine.WithObserver(logUpdate),
	}
	for seat := 0; seat < board.NumColors; seat++ {
		options = append(options, engine.WithAgent(seat, cfg.Difficulty))
	}
	if cfg.Seed != 0 {
		options = append(options, engine.WithSeed(cfg.Seed))
	}

	m, err := engine.NewMatch(user.Identity(), options...)
	if err != nil {
		return err
	}
	result, err := m.Run(ctx)
	if err != nil {
		return err
	}

	winner := "nobody"
	if p, ok := result.State.WinningPlayer(); ok {
		winner = p.Username
	}
	log.Info().Msgf("%s won after %d turns; %s has now won %d of %d games",
		winner, result.Turns, user.Username, result.Stats.Wins, result.Stats.GamesPlayed)
	return nil
}

func logUpdate(u engine.Update) {
	p := u.State.CurrentPlayer()
	switch u.Event {
	case engine.EventMoved:
		mover := u.State.Players[u.Move.Player]
		log.Info().Msgf("%s moved token %d from %d to %d with a %d (%d captured)",
			mover.Username, u.Move.Token, u.Move.From, u.Move.To, u.Move.Dice, len(u.Move.Captures))
	case engine.EventSkipped:
		log.Info().Msgf("%s rolled %d and cannot move", u.State.Players[u.Roll.Player].Username, u.Roll.Dice)
	case engine.EventRolled:
		log.Debug().Msgf("%s rolled %d, can move %v", p.Username, u.Roll.Dice, u.Roll.ValidMoves)
	}
}

// meta/meta.go
package meta

// MAX_TURNS caps a match so a stuck experiment cannot run forever.
const MAX_TURNS = 2000

// GAMES_PER_MATCHUP defines the number of games played per difficulty matchup.
const GAMES_PER_MATCHUP = 50

// GO_ROUTINES defines the number of matches an experiment runs at once.
const GO_ROUTINES = 8

// DB_PATH is where the device-local user and stats database lives.
const DB_PATH = "ludo.db"

// RESULTS_DIR is where experiment records are written.
const RESULTS_DIR = "experiments/results"

package game

// Move is a token chosen by a player for a rolled die.
type Move struct {
	Player int `json:"player"` // index into GameState.Players
	Token  int `json:"token"`
	Dice   int `json:"dice"`
}

// Capture records an opposing token sent back to base.
type Capture struct {
	Player int `json:"player"`
	Token  int `json:"token"`
	From   int `json:"from"` // relative to the captured token's owner
	To     int `json:"to"`   // the token's base sentinel
}

// MoveResult describes what ApplyMove did.
type MoveResult struct {
	Move
	From     int       `json:"from"`
	To       int       `json:"to"`
	Finished bool      `json:"finished"`
	Captures []Capture `json:"captures"`
}

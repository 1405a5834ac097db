// Package board holds the static geometry of the Ludo board: the shared
// circular track, per-color start and home-entry offsets and the safe squares.
// Nothing in this package is mutable.
package board

import "fmt"

const (
	BoardCells        = 52 // squares on the shared circular track
	TrackLength       = 51 // relative positions 0..TrackLength-1 are on the shared track
	HomeStretchLength = 6  // relative positions TrackLength..TotalSteps-1
	TotalSteps        = TrackLength + HomeStretchLength
	TokensPerPlayer   = 4
	DieFaces          = 6
	NumColors         = 4
)

// Color identifies a player's seat on the board.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
)

// Colors lists every color in seating order.
var Colors = [NumColors]Color{Red, Green, Yellow, Blue}

var colorNames = [NumColors]string{"red", "green", "yellow", "blue"}

// Absolute shared-track index where each color's tokens enter the board.
var startOffsets = [NumColors]int{0, 13, 26, 39}

// Absolute shared-track index of the last square before each color turns
// into its home stretch.
var homeEntryOffsets = [NumColors]int{50, 11, 24, 37}

var safeSquares = func() [BoardCells]bool {
	var s [BoardCells]bool
	for _, i := range []int{0, 8, 13, 21, 26, 34, 39, 47} {
		s[i] = true
	}
	return s
}()

func (c Color) Valid() bool {
	return c >= Red && c <= Blue
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor parses a lower-case color name.
func ParseColor(s string) (Color, error) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color: %q", s)
}

// StartOffset returns the absolute track index of the color's entry square.
func StartOffset(c Color) int {
	return startOffsets[c]
}

// HomeEntryOffset returns the absolute track index a token of the color
// leaves the shared track from.
func HomeEntryOffset(c Color) int {
	return homeEntryOffsets[c]
}

// BaseSentinel is the position of token index i while it waits in base.
func BaseSentinel(i int) int {
	return -(i + 1)
}

func InBase(pos int) bool {
	return pos < 0
}

func OnSharedTrack(pos int) bool {
	return pos >= 0 && pos < TrackLength
}

func InHomeStretch(pos int) bool {
	return pos >= TrackLength && pos < TotalSteps
}

func IsFinished(pos int) bool {
	return pos == TotalSteps
}

// StepsToFinish is the number of pips a token still needs, counting the
// exit roll as a single step for tokens in base.
func StepsToFinish(pos int) int {
	if InBase(pos) {
		return TotalSteps + 1
	}
	return TotalSteps - pos
}

// IsSafeSquare reports whether an absolute shared-track index is a star square.
func IsSafeSquare(abs int) bool {
	if abs < 0 || abs >= BoardCells {
		return false
	}
	return safeSquares[abs]
}

// IsSafePosition reports whether a token of the given color at the relative
// position is immune to capture. Base, home stretch and finished positions
// are always safe.
func IsSafePosition(c Color, pos int) bool {
	if !OnSharedTrack(pos) {
		return true
	}
	return IsSafeSquare(ToAbsoluteTrackPosition(c, pos))
}

// ToAbsoluteTrackPosition maps a relative shared-track position to the
// absolute square index. Positions off the shared track map to -1.
func ToAbsoluteTrackPosition(c Color, rel int) int {
	if !OnSharedTrack(rel) {
		return -1
	}
	return (startOffsets[c] + rel) % BoardCells
}

// SameBoardSquare reports whether two tokens physically share a square.
// Tokens in base or in a home stretch never collide.
func SameBoardSquare(ca Color, pa int, cb Color, pb int) bool {
	if !OnSharedTrack(pa) || !OnSharedTrack(pb) {
		return false
	}
	return ToAbsoluteTrackPosition(ca, pa) == ToAbsoluteTrackPosition(cb, pb)
}

// Package color provides terminal styling for the shell: a deterministic
// per-user color and fixed styles for leaderboard tiers.
package color

import "fmt"

// ANSI styles used by the shell renderer.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	Gold   = "\033[38;5;220m"
	Silver = "\033[38;5;250m"
	Bronze = "\033[38;5;172m"
)

// userPalette holds 256-color codes picked for readability on both dark
// and light backgrounds.
var userPalette = []int{33, 37, 42, 70, 99, 105, 134, 141, 167, 173, 208, 214}

// ForUser returns a foreground escape that is stable for a given user ID,
// so the same user renders in the same color everywhere.
func ForUser(userID string) string {
	h := 0
	for _, c := range userID {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return fmt.Sprintf("\033[38;5;%dm", userPalette[h%len(userPalette)])
}

// Paint wraps s in the given style and a reset.
func Paint(style, s string) string {
	return style + s + Reset
}

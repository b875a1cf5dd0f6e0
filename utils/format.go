package utils

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/muesli/termenv"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used accross the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used accross the CLI application.
var (
	StatusColor  = termenv.ANSICyan
	SuccessColor = termenv.ANSIGreen
	ErrorColor   = termenv.ANSIRed
)

// profile is resolved once against stderr, where all the decorated output goes.
var profile = termenv.NewOutput(os.Stderr).EnvColorProfile()

// DecorateText shows the message types in different colors.
func DecorateText(s string, msgType MessageType) string {
	out := termenv.String(s)

	switch msgType {
	case DefaultMessage:
		return out.String()
	case StatusMessage:
		out = out.Foreground(profile.Convert(StatusColor))
	case SuccessMessage:
		out = out.Foreground(profile.Convert(SuccessColor))
	case ErrorMessage:
		out = out.Foreground(profile.Convert(ErrorColor))
	default:
		return s
	}
	return out.String()
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), remainingSeconds)
	}
	if d.Hours() < 24.0 {
		remainingMinutes := math.Mod(d.Minutes(), 60)
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dh %dm %.2fs",
			int64(d.Hours()), int64(remainingMinutes), remainingSeconds)
	}
	remainingHours := math.Mod(d.Hours(), 24)
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dd %dh %dm %.2fs",
		int64(d.Hours()/24), int64(remainingHours),
		int64(remainingMinutes), remainingSeconds)
}

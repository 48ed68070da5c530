package color

import "os"

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	BrightRed = "\033[91m"
)

var colorEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// EnableColor toggles ANSI output globally.
func EnableColor(enable bool) {
	colorEnabled = enable
}

// Colorize wraps text in the given ANSI code when color is enabled.
func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func BrightRedText(text string) string { return Colorize(BrightRed, text) }

func GreenText(text string) string { return Colorize(Green, text) }

func YellowText(text string) string { return Colorize(Yellow, text) }

func BlueText(text string) string { return Colorize(Blue, text) }

func CyanText(text string) string { return Colorize(Cyan, text) }

func GrayText(text string) string { return Colorize(Gray, text) }

// Error prefixes a message with a highlighted error marker.
func Error(message string) string {
	if !colorEnabled {
		return "Error: " + message
	}
	return BrightRedText("Error: ") + message
}

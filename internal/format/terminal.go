package format

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetupColor picks the lipgloss color profile for w. Output that is not a
// terminal, or NO_COLOR, gets plain ASCII so piped prompts stay clean.
func SetupColor(w io.Writer) termenv.Profile {
	profile := termenv.Ascii
	if IsTerminal(w) && os.Getenv("NO_COLOR") == "" {
		profile = termenv.NewOutput(w).EnvColorProfile()
	}
	lipgloss.SetColorProfile(profile)
	return profile
}

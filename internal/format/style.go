package format

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	BurntOrange = lipgloss.Color("#DA702C")
	MutedGray   = lipgloss.Color("245")
	White       = lipgloss.Color("#FFFFFF")
	Cyan        = lipgloss.Color("86")
	Red         = lipgloss.Color("196")
	Green       = lipgloss.Color("#2E8B57")
)

var (
	TitleStyle = lipgloss.NewStyle().Foreground(BurntOrange).Bold(true)
	SlugStyle  = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	MetaStyle  = lipgloss.NewStyle().Foreground(MutedGray)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	OKStyle    = lipgloss.NewStyle().Foreground(Green)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BurntOrange).
			Padding(0, 1)
)

// ModeRow is one line of the modes listing.
type ModeRow struct {
	Slug     string
	Name     string
	Source   string
	Groups   []string
	Access   []string // tool categories the mode may use
	ReadOnly bool
	Summary  string
}

// RenderModes lays modes out as aligned rows.
func RenderModes(rows []ModeRow) string {
	slugWidth := 0
	for _, r := range rows {
		slugWidth = max(slugWidth, lipgloss.Width(r.Slug))
	}

	var lines []string
	for _, r := range rows {
		slug := SlugStyle.Width(slugWidth + 2).Render(r.Slug)
		meta := "[" + r.Source + "] " + strings.Join(r.Groups, ",")
		if len(r.Access) > 0 {
			meta += " | " + strings.Join(r.Access, ",")
		}
		if r.ReadOnly {
			meta += " (read-only)"
		}
		meta = MetaStyle.Render(meta)
		line := lipgloss.JoinHorizontal(lipgloss.Top, slug, r.Name+"  ", meta)
		if r.Summary != "" {
			line += "\n" + lipgloss.NewStyle().PaddingLeft(slugWidth+2).Render(MetaStyle.Render(r.Summary))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderStats renders a token summary box.
func RenderStats(chars, tokens int) string {
	return BoxStyle.Render(TitleStyle.Render("Prompt size") + "\n" +
		MetaStyle.Render("characters: ") + strconv.Itoa(chars) + "\n" +
		MetaStyle.Render("tokens (cl100k): ") + strconv.Itoa(tokens))
}

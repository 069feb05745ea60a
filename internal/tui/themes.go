package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for the grid and readout.
type Theme struct {
	Name    string
	Alive   lipgloss.Color
	Dead    lipgloss.Color
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeMoss = Theme{
		Name:    "moss",
		Alive:   lipgloss.Color("82"),
		Dead:    lipgloss.Color("236"),
		Primary: lipgloss.Color("86"),
		Text:    lipgloss.Color("255"),
		Muted:   lipgloss.Color("242"),
		Success: lipgloss.Color("82"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Alive:   lipgloss.Color("#ff6b6b"), // coral
		Dead:    lipgloss.Color("#3a2430"),
		Primary: lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Alive:   lipgloss.Color("#00ff00"), // green phosphor
		Dead:    lipgloss.Color("#003300"),
		Primary: lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Alive:   lipgloss.Color("#ffffff"),
		Dead:    lipgloss.Color("#444444"),
		Primary: lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Alive:   lipgloss.Color("#00a8cc"),
		Dead:    lipgloss.Color("#0a2a44"),
		Primary: lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeMoss, ThemeEmber, ThemeRetro, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to moss.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMoss
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	alive, dead     lipgloss.Style
	primary, text   lipgloss.Style
	muted, dimmer   lipgloss.Style
	good, warn, bad lipgloss.Style
}

func (t Theme) palette() styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return styles{
		alive:   fg(t.Alive),
		dead:    fg(t.Dead),
		primary: fg(t.Primary),
		text:    fg(t.Text),
		muted:   fg(t.Muted),
		dimmer:  fg(t.Dead),
		good:    fg(t.Success),
		warn:    fg(t.Warning),
		bad:     fg(t.Error).Bold(true),
	}
}

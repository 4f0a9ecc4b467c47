package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#16a34a")
	colorMuted   = lipgloss.Color("241")
	colorGold    = lipgloss.Color("#d97706")
	colorDanger  = lipgloss.Color("#dc2626")

	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger).MarginTop(1)
	badgeStyle = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	priceStyle = lipgloss.NewStyle().Bold(true)

	buttonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(colorPrimary).
		Padding(0, 1)
	busyButtonStyle = buttonStyle.Background(colorMuted)

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("250")).
		Padding(0, 1).
		Width(44)
	cheapestCardStyle = cardStyle.BorderForeground(colorPrimary)
)

// storeColors mirror the web page's store badges.
var storeColors = map[string]lipgloss.Color{
	"tesco":     "#00539f",
	"supervalu": "#e2001a",
	"dunnes":    "#1a1a1a",
	"lidl":      "#0050aa",
	"aldi":      "#00005f",
}

func storeBadge(store, class string) string {
	bg, ok := storeColors[class]
	if !ok {
		bg = colorMuted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(bg).Padding(0, 1).Render(store)
}

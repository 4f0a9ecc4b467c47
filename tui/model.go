// Package tui is a terminal front end for the price search. It drives the
// same searchui.Controller as the web page, painting with lipgloss.
package tui

import (
	"context"
	"strings"
	"time"

	"compareaid/searchui"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rohanthewiz/serr"
)

const scrollStep = 5

// Model is the Bubble Tea model of the search screen.
type Model struct {
	ctrl    *searchui.Controller
	bridge  *bridge
	timeout time.Duration

	input   textinput.Model
	spinner spinner.Model

	loading  bool
	results  *searchui.ResultsView
	errText  string
	revealed int // cards of results shown so far
	gen      int // bumps whenever results change, to drop old reveal ticks
	section  searchui.Section
	scroll   int // first body line on screen
	preset   int
	height   int
	last     searchui.Outcome
}

// New builds the model. timeout bounds each search; zero means none.
func New(searcher searchui.Searcher, timeout time.Duration, opts ...searchui.Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for milk, bread, eggs..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	br := newBridge()
	return Model{
		ctrl:    searchui.New(searcher, br, opts...),
		bridge:  br,
		timeout: timeout,
		input:   ti,
		spinner: s,
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(searcher searchui.Searcher, timeout time.Duration, opts ...searchui.Option) error {
	p := tea.NewProgram(New(searcher, timeout, opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return serr.Wrap(err, "terminal UI failed")
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bridge.listen())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit(m.input.Value())
		case "ctrl+p":
			term := searchui.PresetTerms[m.preset%len(searchui.PresetTerms)]
			m.preset++
			m.input.SetValue(term)
			return m.submit(term)
		case "pgdown":
			m.scroll += scrollStep
			return m, nil
		case "pgup":
			m.scroll = max(0, m.scroll-scrollStep)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-24)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadingMsg:
		m.loading = msg.on
		if msg.on {
			return m, tea.Batch(m.bridge.listen(), m.spinner.Tick)
		}
		return m, m.bridge.listen()

	case hideResultsMsg:
		m.results = nil
		m.revealed = 0
		m.gen++
		return m, m.bridge.listen()

	case hideErrorMsg:
		m.errText = ""
		return m, m.bridge.listen()

	case showResultsMsg:
		rv := msg.view
		m.results = &rv
		m.revealed = 0
		m.gen++
		cmds := []tea.Cmd{m.bridge.listen()}
		if len(rv.Cards) > 0 {
			cmds = append(cmds, reveal(m.gen, rv.Cards[0].Delay))
		}
		return m, tea.Batch(cmds...)

	case showErrorMsg:
		m.errText = msg.text
		return m, m.bridge.listen()

	case scrollMsg:
		m.section = msg.section
		m.scroll = 0
		return m, m.bridge.listen()

	case revealMsg:
		if msg.gen != m.gen || m.results == nil || m.revealed >= len(m.results.Cards) {
			return m, nil
		}
		m.revealed++
		if m.revealed < len(m.results.Cards) {
			cards := m.results.Cards
			return m, reveal(m.gen, cards[m.revealed].Delay-cards[m.revealed-1].Delay)
		}
		return m, nil

	case searchDoneMsg:
		m.last = msg.outcome
		return m, nil
	}

	return m, nil
}

// submit starts a search for raw unless it is blank or one is already running.
func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	if m.loading || searchui.NormalizeQuery(raw) == "" {
		return m, nil
	}
	ctrl, timeout := m.ctrl, m.timeout
	return m, func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return searchDoneMsg{outcome: ctrl.Submit(ctx, raw)}
	}
}

func reveal(gen int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return revealMsg{gen: gen}
	})
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(brandStyle.Render("🛒 ComparAid") + "  " + mutedStyle.Render("Compare Irish grocery prices") + "\n\n")

	button := buttonStyle.Render(searchui.LabelIdle)
	if m.loading {
		button = busyButtonStyle.Render(searchui.LabelBusy)
	}
	sb.WriteString(m.input.View() + "  " + button + "\n")
	sb.WriteString(mutedStyle.Render("Popular: "+strings.Join(searchui.PresetTerms, " · ")+"  (ctrl+p)") + "\n")

	body := strings.Split(m.body(), "\n")
	start := min(m.scroll, max(0, len(body)-1))
	body = body[start:]
	if m.height > 0 {
		if room := m.height - 6; room > 0 && len(body) > room {
			body = body[:room]
		}
	}
	sb.WriteString(strings.Join(body, "\n"))

	sb.WriteString("\n" + mutedStyle.Render("enter search · ctrl+p popular · pgup/pgdn scroll · esc quit"))
	return sb.String()
}

func (m Model) body() string {
	switch {
	case m.loading:
		return "\n" + m.spinner.View() + " Searching prices across stores..."
	case m.errText != "":
		return errorStyle.Render("⚠ " + m.errText)
	case m.results != nil:
		return m.resultsView()
	}
	return ""
}

func (m Model) resultsView() string {
	rv := m.results
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(rv.Title) + "\n")
	sb.WriteString(mutedStyle.Render("Last updated: "+rv.Updated+" · ") + rv.CacheBadge() + "\n")

	for _, c := range rv.Cards[:m.revealed] {
		sb.WriteString(renderCard(c) + "\n")
	}
	return sb.String()
}

func renderCard(c searchui.Card) string {
	price := priceStyle.Render(c.PriceLabel())
	if c.Cheapest {
		price += "  " + badgeStyle.Render(searchui.BestPriceBadge)
	}
	lines := []string{
		priceStyle.Render(c.Name),
		mutedStyle.Render(c.UnitLabel()) + "  " + storeBadge(c.Store, c.StoreClass()),
		price,
		mutedStyle.Render(c.StoreURL),
	}

	style := cardStyle
	if c.Cheapest {
		style = cheapestCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

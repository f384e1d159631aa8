package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/mozillazg/go-unidecode"

	"github.com/f3rmion/minpair/internal/clipboard"
	"github.com/f3rmion/minpair/internal/pairs"
	"github.com/f3rmion/minpair/internal/report"
	"github.com/f3rmion/minpair/internal/tui/bigword"
)

const (
	maxWordWidth = 30
	defaultRows  = 10
	bigCols      = 36
	bigRows      = 5
)

// Options configures a browser.
type Options struct {
	Title    string
	Renderer *bigword.Renderer      // Nil disables big-word rendering
	Copy     func(text string) error // Defaults to the system clipboard
}

// BrowserModel is the Bubble Tea model for browsing found pairs.
type BrowserModel struct {
	pairs    []pairs.Pair
	filtered []int // Indexes into pairs
	cursor   int
	offset   int

	searchInput textinput.Model
	searching   bool
	searchTerm  string

	renderer *bigword.Renderer
	copy     func(string) error
	copied   bool
	err      error

	title     string
	wordWidth int
	width     int
	height    int
}

// clearCopiedMsg is sent to clear the copied indicator.
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// NewBrowser creates a browser over found pairs.
func NewBrowser(found []pairs.Pair, opts Options) BrowserModel {
	si := textinput.New()
	si.Placeholder = "Search (diacritics optional)..."
	si.CharLimit = 50
	si.Width = 30

	if opts.Copy == nil {
		opts.Copy = clipboard.Write
	}

	width := 0
	for _, p := range found {
		width = max(width, runewidth.StringWidth(p.LeftWord))
	}

	m := BrowserModel{
		pairs:       found,
		searchInput: si,
		renderer:    opts.Renderer,
		copy:        opts.Copy,
		title:       opts.Title,
		wordWidth:   min(width, maxWordWidth),
	}
	m.applyFilter()
	return m
}

// Init initializes the model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.searchTerm = m.searchInput.Value()
				m.applyFilter()
				return m, nil
			case "esc":
				m.searching = false
				m.searchInput.SetValue("")
				return m, nil
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.visibleRows())
		case "pgdown":
			m.move(m.visibleRows())
		case "home", "g":
			m.move(-len(m.filtered))
		case "end", "G":
			m.move(len(m.filtered))
		case "/":
			m.searching = true
			m.searchInput.Focus()
			return m, textinput.Blink
		case "c":
			m.searchTerm = ""
			m.searchInput.SetValue("")
			m.applyFilter()
		case "y":
			p, ok := m.Selected()
			if !ok {
				return m, nil
			}
			if err := m.copy(clipboard.Pair(p.LeftWord, p.RightWord)); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		}
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
	}

	return m, nil
}

// Selected returns the pair under the cursor.
func (m BrowserModel) Selected() (pairs.Pair, bool) {
	if m.cursor >= len(m.filtered) {
		return pairs.Pair{}, false
	}
	return m.pairs[m.filtered[m.cursor]], true
}

// Visible returns the number of pairs matching the current search.
func (m BrowserModel) Visible() int {
	return len(m.filtered)
}

func (m *BrowserModel) move(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.filtered)-1, m.cursor+delta))
	m.scroll()
}

// scroll keeps the cursor inside the list window.
func (m *BrowserModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m BrowserModel) visibleRows() int {
	if m.height == 0 {
		return defaultRows
	}
	// Header, search, counter, detail box and help take the rest
	return max(3, m.height-bigRows-18)
}

// applyFilter filters pairs by the search term.
func (m *BrowserModel) applyFilter() {
	m.filtered = nil
	for i, p := range m.pairs {
		if matches(p, m.searchTerm) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor, m.offset = 0, 0
}

// matches reports whether either word or the feature name contains term.
// An all-ASCII term matches regardless of diacritics.
func matches(p pairs.Pair, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	fields := []string{p.LeftWord, p.RightWord, p.Kind.String()}
	if isASCII(term) {
		for _, f := range fields {
			if strings.Contains(fold(f), term) {
				return true
			}
		}
		return false
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// fold strips diacritics, so that "duong" finds "đường".
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// View renders the UI.
func (m BrowserModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("  Minimal Pairs  ")
	if m.title != "" {
		header += "  " + SubtitleStyle.Render(m.title)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString("  ")
		b.WriteString(SearchBoxStyle.Render("🔍 " + m.searchInput.View()))
		b.WriteString("\n\n")
	} else if m.searchTerm != "" {
		b.WriteString("  ")
		b.WriteString(HelpStyle.Render(fmt.Sprintf("Filter: %q (press 'c' to clear)", m.searchTerm)))
		b.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString("  ")
		b.WriteString(HelpStyle.Render("No pairs match your search"))
		b.WriteString("\n")
	} else {
		b.WriteString("  ")
		b.WriteString(CountStyle.Render(fmt.Sprintf("Pair %d of %d", m.cursor+1, len(m.filtered))))
		b.WriteString("\n")
		b.WriteString(m.renderList())
		b.WriteString("\n")
		if p, ok := m.Selected(); ok {
			b.WriteString(m.renderDetail(p))
		}
	}

	if m.err != nil {
		b.WriteString("\n  ")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  ↑/↓: prev/next pair • /: search • c: clear • y: copy • q: quit"))

	return b.String()
}

// renderList renders the window of pairs around the cursor.
func (m BrowserModel) renderList() string {
	var b strings.Builder

	end := min(len(m.filtered), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		p := m.pairs[m.filtered[i]]
		line := runewidth.FillRight(runewidth.Truncate(p.LeftWord, m.wordWidth, "…"), m.wordWidth) +
			"  " + p.RightWord
		if i == m.cursor {
			b.WriteString("  ")
			b.WriteString(RowActiveStyle.Render("▸ " + line))
		} else {
			b.WriteString("  ")
			b.WriteString(RowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderDetail renders the selected pair's difference.
func (m BrowserModel) renderDetail(p pairs.Pair) string {
	lines := []string{
		fmt.Sprintf("%s  %s", LabelStyle.Render("Feature:"), FeatureStyle.Render(p.Kind.String())),
		fmt.Sprintf("%s  %s", LabelStyle.Render("Syllable:"), ValueStyle.Render(fmt.Sprintf("%d", p.Index+1))),
		fmt.Sprintf("%s  %s → %s", LabelStyle.Render("Left:"),
			LeftStyle.Render(p.LeftWord), ValueStyle.Render(orNull(p.Left))),
		fmt.Sprintf("%s  %s → %s", LabelStyle.Render("Right:"),
			RightStyle.Render(p.RightWord), ValueStyle.Render(orNull(p.Right))),
	}

	header := SubtitleStyle.Render("Difference")
	if m.copied {
		header += "  " + CopiedStyle.Render("✓ Copied!")
	}
	content := header + "\n\n" + strings.Join(lines, "\n")

	if m.renderer != nil && (m.width == 0 || m.width >= bigCols*2+12) {
		big := lipgloss.JoinHorizontal(lipgloss.Top,
			BigWordStyle.Render(m.renderer.Render(p.LeftWord, bigCols, bigRows)),
			BigWordStyle.Render(m.renderer.Render(p.RightWord, bigCols, bigRows)),
		)
		content += "\n\n" + big
	}

	return BoxStyle.Render(content)
}

func orNull(s string) string {
	if s == "" {
		return report.Null
	}
	return s
}

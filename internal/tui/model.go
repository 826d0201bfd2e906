// Package tui provides the Bubble Tea report browser.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/readscore/internal/model"
)

const (
	tabText = iota
	tabStatistics
	tabScores
)

// Header, its border and one row.
const minScoreTableHeight = 3

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	averageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea report browser.
type Model struct {
	source string
	text   string
	report model.Report

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	scoreTable table.Model

	width  int
	height int
}

// NewModel constructs a browser over an analyzed document.
func NewModel(source, text string, r model.Report) *Model {
	m := &Model{
		source: source,
		text:   text,
		report: r,
		tabs:   []string{"Text", "Statistics", "Scores"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.scoreTable = buildScoreTable(r, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabScores {
				m.scoreTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabScores {
				m.scoreTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabScores {
				var cmd tea.Cmd
				m.scoreTable, cmd = m.scoreTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitBlock(m.renderHeader(), m.width, headerHeight)
	body := fitBlock(m.renderBody(), m.width, bodyHeight)
	footer := fitBlock(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.viewports[tabText].SetContent(wrapText(m.text, m.width))
	m.viewports[tabStatistics].SetContent(renderStatisticsCards(m.report.Statistics, m.width))
	// The table shares the body with a blank line and the average line.
	m.scoreTable = buildScoreTable(m.report, m.width, bodyHeight-2)
	if m.activeTab == tabScores {
		m.scoreTable.Focus()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = ((m.activeTab+delta)%count + count) % count
	if m.activeTab == tabScores {
		m.scoreTable.Focus()
	} else {
		m.scoreTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	source := "-"
	if m.source != "" {
		source = filepath.Base(m.source)
	}
	summary := fmt.Sprintf("Document: %s  words=%d  average age=%.2f", source, m.report.Statistics.Words, m.report.AverageAge())
	return m.renderTabs() + "\n" + headerStyle.Render(clip(summary, m.width))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q")
}

func (m *Model) renderBody() string {
	if m.activeTab == tabScores {
		average := averageStyle.Render(fmt.Sprintf("This text should be understood in average by %.2f-year-olds.", m.report.AverageAge()))
		return m.scoreTable.View() + "\n\n" + average
	}
	return m.viewports[m.activeTab].View()
}

func renderStatisticsCards(s model.TextStatistics, width int) string {
	cards := []string{
		metricCard("Words", fmt.Sprintf("%d", s.Words)),
		metricCard("Sentences", fmt.Sprintf("%d", s.Sentences)),
		metricCard("Characters", fmt.Sprintf("%d", s.Characters)),
		metricCard("Syllables", fmt.Sprintf("%d", s.Syllables)),
		metricCard("Polysyllables", fmt.Sprintf("%d", s.Polysyllables)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildScoreTable(r model.Report, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Metric", Width: 34},
		{Title: "Score", Width: 8},
		{Title: "Age", Width: 4},
	}
	rows := make([]table.Row, 0, len(r.Scores))
	for _, s := range r.Scores {
		rows = append(rows, table.Row{
			s.Metric.Name(),
			fmt.Sprintf("%.2f", s.Score),
			fmt.Sprintf("%d", s.Age),
		})
	}
	// Styles go first: the header border counts toward the requested height.
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithStyles(scoreTableStyles()),
		table.WithHeight(max(minScoreTableHeight, height)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	return t
}

func scoreTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// fitBlock pads every line of s to width and clips or extends it to height lines.
func fitBlock(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.SplitN(s, "\n", height+1)
	block := make([]string, height)
	for i := range block {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		block[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, line)
	}
	return strings.Join(block, "\n")
}

// clip shortens s to width cells, ending in "..." when there is room for it.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}

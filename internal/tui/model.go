// Package tui provides the Bubble Tea live clock and interactive converter.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/stardate/internal/config"
	"github.com/verte-zerg/stardate/internal/format"
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/store"
	"github.com/verte-zerg/stardate/internal/stardate"
)

const tickInterval = time.Second

// Options configures the clock model.
type Options struct {
	Kinds  []format.Kind
	Format format.Options
	// Updates, when set, delivers reloaded config files.
	Updates <-chan config.FileConfig
	// Store, when set, records the typed date on enter.
	Store  *store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

type tickMsg time.Time

type configMsg config.FileConfig

// Model implements the Bubble Tea clock UI.
type Model struct {
	kinds   []format.Kind
	opts    format.Options
	updates <-chan config.FileConfig
	store   *store.Store
	logger  *slog.Logger
	now     func() time.Time

	input textinput.Model
	table table.Model

	width  int
	height int

	current instant.Time
	source  string
	errMsg  string
	status  string
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a clock model.
func NewModel(opts Options) *Model {
	m := &Model{
		kinds:   opts.Kinds,
		opts:    opts.Format,
		updates: opts.Updates,
		store:   opts.Store,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if len(m.kinds) == 0 {
		m.kinds = format.All
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.input = textinput.New()
	m.input.Prompt = "Date: "
	m.input.Placeholder = "[21]00000.00, 2323-01-01T00:00, U0 ..."
	m.input.CharLimit = 0
	m.input.Focus()
	m.table = table.New(
		table.WithColumns(tableColumns(0)),
	)
	m.table.SetStyles(tableStyles())
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(), m.waitForConfig())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, m.width-lipgloss.Width(m.input.Prompt)-2)
		m.table.SetColumns(tableColumns(m.width))
		m.table.SetWidth(m.width)
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tick()
	case configMsg:
		m.applyConfig(config.FileConfig(msg))
		m.refresh()
		return m, m.waitForConfig()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.record()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.status = ""
	m.refresh()
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render("Stardate clock"),
		m.input.View(),
		m.renderStatus(),
		m.table.View(),
		footerStyle.Render("enter record · esc quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return sourceStyle.Render(m.source)
}

// refresh recomputes the shown instant from the input, or from the clock
// when the input is empty. A failing input keeps the last good instant.
func (m *Model) refresh() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.current = instant.FromTime(m.now())
		m.source = "now"
		m.errMsg = ""
	} else {
		t, kind, err := format.Parse(text)
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.current = t
			m.source = "read as " + kind.Name()
			m.errMsg = ""
		}
	}
	m.table.SetRows(m.rows())
	m.fitTable()
}

// fitTable sizes the table so every kind is visible below the header and
// its border line.
func (m *Model) fitTable() {
	target := len(m.kinds) + 2
	m.table.SetHeight(target)
	if h := lipgloss.Height(m.table.View()); h != target {
		m.table.SetHeight(maxInt(1, 2*target-h))
	}
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.kinds))
	for _, k := range m.kinds {
		rows = append(rows, table.Row{k.Name(), k.Format(m.current, m.opts)})
	}
	return rows
}

func (m *Model) record() {
	text := strings.TrimSpace(m.input.Value())
	if m.store == nil || text == "" {
		return
	}
	t, kind, err := format.Parse(text)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	conv := model.Conversion{Input: text, Kind: kind.Name(), Instant: t, RecordedAt: m.now()}
	if _, err := m.store.InsertConversion(context.Background(), conv); err != nil {
		m.logger.Error("failed to record conversion", "input", text, "error", err)
		m.errMsg = fmt.Sprintf("failed to record: %v", err)
		return
	}
	m.status = "recorded " + text
}

func (m *Model) applyConfig(cfg config.FileConfig) {
	if cfg.Output.Formats != nil {
		kinds, err := format.ParseSelectors(*cfg.Output.Formats)
		if err != nil || len(kinds) == 0 {
			m.logger.Warn("ignoring output.formats from reloaded config", "formats", *cfg.Output.Formats, "error", err)
		} else {
			m.kinds = kinds
		}
	}
	if cfg.Output.Digits != nil {
		d := *cfg.Output.Digits
		if d < 0 || d > stardate.MaxDigits {
			m.logger.Warn("ignoring output.digits from reloaded config", "digits", d)
		} else {
			m.opts.Digits = d
		}
	}
	m.status = "config reloaded"
}

func (m *Model) waitForConfig() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configMsg(cfg)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func tableColumns(width int) []table.Column {
	nameWidth := 10
	valueWidth := maxInt(32, width-nameWidth-4)
	return []table.Column{
		{Title: "Format", Width: nameWidth},
		{Title: "Value", Width: valueWidth},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

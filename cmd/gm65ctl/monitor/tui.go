package monitor

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mdouchement/gm65d"
)

// maxRows bounds the number of barcodes kept on screen, newest first.
const maxRows = 500

type model struct {
	table table.Model
	scans []gm65d.Scan
	seen  map[string]bool
}

func newTUI() *model {
	columns := []table.Column{
		{Title: "Time", Width: 10},
		{Title: "Barcode", Width: 40},
		{Title: "Length", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		Foreground(lipgloss.Color("#00afff")).
		BorderForeground(lipgloss.Color("#00afff")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Bold(false)
	t.SetStyles(s)

	return &model{
		table: t,
		seen:  make(map[string]bool),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height)
	case gm65d.Scan:
		m.add(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	return m.table.View()
}

func (m *model) add(s gm65d.Scan) {
	if m.seen[s.ID] {
		// History replayed on reconnection.
		return
	}
	m.seen[s.ID] = true

	m.scans = append([]gm65d.Scan{s}, m.scans...)
	if len(m.scans) > maxRows {
		for _, old := range m.scans[maxRows:] {
			delete(m.seen, old.ID)
		}
		m.scans = m.scans[:maxRows]
	}

	rows := make([]table.Row, 0, len(m.scans))
	for _, s := range m.scans {
		rows = append(rows, table.Row{
			s.ScannedAt.Local().Format("15:04:05"),
			strconv.Quote(s.Code),
			strconv.Itoa(len(s.Code)),
		})
	}

	m.table.SetRows(rows)
}

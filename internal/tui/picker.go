package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

// PickerModel lists withdrawal requests and lets the operator choose one to
// review. The chosen request is tracked by ID and only changes through Select.
type PickerModel struct {
	theme      Theme
	keys       KeyMap
	selectedID *string
	requests   []model.WithdrawalRequest
	table      table.Model
	width      int
	height     int
	quitting   bool
}

// NewPicker creates a picker over requests, newest first.
func NewPicker(requests []model.WithdrawalRequest, theme Theme) PickerModel {
	sorted := make([]model.WithdrawalRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RequestedAt.After(sorted[j].RequestedAt)
	})

	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Client", Width: 12},
		{Title: "Login", Width: 18},
		{Title: "Amount", Width: 14},
		{Title: "Channel", Width: 22},
		{Title: "Requested", Width: 16},
	}

	rows := make([]table.Row, 0, len(sorted))
	for _, req := range sorted {
		rows = append(rows, table.Row{
			req.Status.Icon(),
			req.ClientID,
			req.ClientLogin,
			reconcile.FormatAmount(req.Amount),
			req.PaymentChannel,
			req.RequestedAt.Format("2006-01-02 15:04"),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return PickerModel{
		theme:    theme,
		keys:     DefaultKeyMap(),
		requests: sorted,
		table:    t,
		width:    100,
		height:   24,
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if req, ok := m.Current(); ok {
				m.Select(req.ID)
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
		case key.Matches(msg, m.keys.Home):
			m.table.GotoTop()
		case key.Matches(msg, m.keys.End):
			m.table.GotoBottom()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-6, 3))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.requests) == 0 {
		return m.theme.Subtitle.Render("No withdrawal requests in range.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("🎲 Withdrawal requests (%d)", len(m.requests))))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if req, ok := m.Current(); ok && req.Info != "" {
		b.WriteString(m.theme.Subtitle.Render(truncate(req.Info, m.width-2)))
		b.WriteString("\n")
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(m.theme.Help.Render(strings.Join(help, " • ")))
	return b.String()
}

// Current returns the request under the cursor.
func (m PickerModel) Current() (model.WithdrawalRequest, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.requests) {
		return model.WithdrawalRequest{}, false
	}
	return m.requests[i], true
}

// Select marks the request with id as chosen and moves the cursor to it.
// Unknown ids leave the selection unchanged and return false.
func (m *PickerModel) Select(id string) bool {
	for i, req := range m.requests {
		if req.ID == id {
			chosen := id
			m.selectedID = &chosen
			m.table.SetCursor(i)
			return true
		}
	}
	return false
}

// SelectedID returns the chosen request id, if any.
func (m PickerModel) SelectedID() (string, bool) {
	if m.selectedID == nil {
		return "", false
	}
	return *m.selectedID, true
}

// Selected returns the chosen request, if any.
func (m PickerModel) Selected() (*model.WithdrawalRequest, bool) {
	id, ok := m.SelectedID()
	if !ok {
		return nil, false
	}
	for i := range m.requests {
		if m.requests[i].ID == id {
			req := m.requests[i]
			return &req, true
		}
	}
	return nil, false
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

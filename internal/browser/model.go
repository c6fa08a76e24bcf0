// Package browser is the interactive terminal view over a fetched project
// list. It owns the cursor and viewport; the list itself never changes after
// construction.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edgarhsanchez/gitlab-ops/internal/adapters/gitlab"
)

// Fallback dimensions used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the browser TUI model.
type Model struct {
	projects []gitlab.Project
	cursor   int
	offset   int
	width    int
	height   int

	showDetails bool
	quitting    bool
}

// NewModel creates a browser model over the fetched project list.
func NewModel(projects []gitlab.Project) Model {
	return Model{
		projects:    projects,
		showDetails: true,
	}
}

// NewModelWithOptions creates a browser model with the details pane toggled.
func NewModelWithOptions(projects []gitlab.Project, showDetails bool) Model {
	return Model{
		projects:    projects,
		showDetails: showDetails,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
			m = m.clampViewport()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m = m.clampViewport()
		case "enter":
			if m.cursor >= 0 && m.cursor < len(m.projects) {
				if url := m.projects[m.cursor].WebURL; url != "" {
					_ = openBrowser(url)
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.clampViewport()
	}

	return m, nil
}

// visibleRows is the number of list entries that fit between the list
// panel's chrome, the details pane, and the help line.
func (m Model) visibleRows() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	// List panel chrome is 4 lines, help line is 1.
	rows := h - 5
	if m.showDetails {
		rows -= detailsPaneLines
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampViewport restores the invariant offset <= cursor < offset+visibleRows,
// moving the viewport by the minimum amount. The cursor is clamped into the
// list bounds first.
func (m Model) clampViewport() Model {
	if len(m.projects) == 0 {
		m.cursor = 0
		m.offset = 0
		return m
	}

	if m.cursor > len(m.projects)-1 {
		m.cursor = len(m.projects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	// Resize can leave the window hanging past the end of the list.
	if m.offset > len(m.projects)-rows {
		m.offset = len(m.projects) - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

// Selected returns the project under the cursor, or false for an empty list.
func (m Model) Selected() (gitlab.Project, bool) {
	if len(m.projects) == 0 {
		return gitlab.Project{}, false
	}
	return m.projects[m.cursor], true
}

// Run starts the browser over the fetched projects, taking over the terminal
// (raw mode, alternate screen) until the user quits. Bubbletea restores the
// previous terminal mode on every exit path, including errors and signals.
func Run(projects []gitlab.Project, showDetails bool) error {
	p := tea.NewProgram(
		NewModelWithOptions(projects, showDetails),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}

// openBrowser opens the specified URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

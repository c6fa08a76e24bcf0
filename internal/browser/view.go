package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// detailsPaneLines is the height of the details panel: 3 content lines plus
// 4 lines of panel chrome.
const detailsPaneLines = 7

// Styles (muted terminal aesthetic)
var (
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d4450")) // slate

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7eb8da")) // steel blue

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7ec699")) // sage green

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))
)

// panelWidth returns the rendering width, bounded so panels stay legible.
func (m Model) panelWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

// View renders the TUI. The output is a pure function of the model state:
// rendering the same state twice produces identical bytes.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.panelWidth()
	var b strings.Builder

	if len(m.projects) == 0 {
		b.WriteString(renderPanel("PROJECTS", "  No projects found for this token.", width))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q/esc: quit"))
		return b.String()
	}

	b.WriteString(m.renderList(width))
	b.WriteString("\n")

	if m.showDetails {
		b.WriteString(m.renderDetails(width))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q/esc: quit  j/k: move  enter: open"))
	return b.String()
}

// renderList renders the visible window of the project list with the cursor
// row highlighted.
func (m Model) renderList(width int) string {
	rows := m.visibleRows()
	end := m.offset + rows
	if end > len(m.projects) {
		end = len(m.projects)
	}

	inner := width - 4 // panel border + padding
	// Columns: selector(2) + name + gap(2) + description + gap(2) + url
	nameW := 24
	urlW := 28
	if inner < nameW+urlW+10 {
		nameW = inner / 3
		urlW = inner / 3
	}
	descW := inner - 2 - nameW - 2 - urlW - 2
	if descW < 3 {
		descW = 3
	}

	var content strings.Builder
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			content.WriteString("\n")
		}
		content.WriteString(m.renderRow(i, nameW, descW, urlW))
	}

	title := fmt.Sprintf("PROJECTS %d/%d", m.cursor+1, len(m.projects))
	return renderPanel(title, content.String(), width)
}

// renderRow renders one project line: selector, name, description, web URL.
func (m Model) renderRow(i, nameW, descW, urlW int) string {
	p := m.projects[i]

	selector := "  "
	nameStyle := labelStyle
	if i == m.cursor {
		selector = "> "
		nameStyle = selectedStyle
	}

	return selector +
		nameStyle.Render(padOrTruncate(p.Name, nameW)) + "  " +
		dimStyle.Render(padOrTruncate(p.Description, descW)) + "  " +
		urlStyle.Render(truncateVisual(p.WebURL, urlW))
}

// renderDetails renders the details pane for the selected project.
func (m Model) renderDetails(width int) string {
	p := m.projects[m.cursor]

	desc := p.Description
	if desc == "" {
		desc = "No description"
	}

	inner := width - 4
	fieldW := inner - 15 // "  Description  " prefix

	var content strings.Builder
	content.WriteString(dotLeader("Name", truncateVisual(p.Name, fieldW), inner))
	content.WriteString("\n")
	content.WriteString(dotLeader("Description", truncateVisual(desc, fieldW), inner))
	content.WriteString("\n")
	content.WriteString(dotLeader("Web URL", truncateVisual(p.WebURL, fieldW), inner))

	return renderPanel("DETAILS", content.String(), width)
}

// renderPanel builds a bordered panel at the given total width.
// Structure: ╭─ TITLE ─...─╮ / │ (space) content (space) │ / ╰─...─╯
func renderPanel(title, content string, width int) string {
	var lines []string

	lines = append(lines, buildTopBorder(title, width))
	lines = append(lines, buildEmptyLine(width))
	for _, line := range strings.Split(content, "\n") {
		lines = append(lines, buildContentLine(line, width))
	}
	lines = append(lines, buildEmptyLine(width))
	lines = append(lines, buildBottomBorder(width))

	return strings.Join(lines, "\n")
}

// buildTopBorder creates: ╭─ TITLE ─────...─────╮ at exactly width chars
func buildTopBorder(title string, width int) string {
	titleUpper := strings.ToUpper(title)
	prefix := "╭─ "
	prefixWidth := lipgloss.Width(prefix + titleUpper + " ")

	dashCount := width - prefixWidth - 1 // -1 for ╮
	if dashCount < 0 {
		dashCount = 0
	}

	return borderStyle.Render(prefix) + labelStyle.Render(titleUpper) + borderStyle.Render(" "+strings.Repeat("─", dashCount)+"╮")
}

// buildBottomBorder creates: ╰─────────────────────────╯
func buildBottomBorder(width int) string {
	dashCount := width - 2
	return borderStyle.Render("╰" + strings.Repeat("─", dashCount) + "╯")
}

// buildEmptyLine creates: │                         │
func buildEmptyLine(width int) string {
	border := borderStyle.Render("│")
	return border + strings.Repeat(" ", width-2) + border
}

// buildContentLine creates: │ (space) content padded/truncated (space) │
func buildContentLine(content string, width int) string {
	contentWidth := width - 4
	adjusted := padOrTruncate(content, contentWidth)
	border := borderStyle.Render("│")
	return border + " " + adjusted + " " + border
}

// padOrTruncate ensures content is exactly targetWidth visual chars
func padOrTruncate(s string, targetWidth int) string {
	visualWidth := lipgloss.Width(s)

	if visualWidth == targetWidth {
		return s
	}
	if visualWidth > targetWidth {
		return truncateVisual(s, targetWidth)
	}
	return s + strings.Repeat(" ", targetWidth-visualWidth)
}

// truncateVisual truncates string to targetWidth visual chars, adding "..." only if needed
func truncateVisual(s string, targetWidth int) string {
	if lipgloss.Width(s) <= targetWidth {
		return s
	}

	if targetWidth <= 3 {
		return strings.Repeat(".", targetWidth)
	}

	result := ""
	width := 0
	for _, r := range s {
		runeWidth := lipgloss.Width(string(r))
		if width+runeWidth > targetWidth-3 {
			break
		}
		result += string(r)
		width += runeWidth
	}

	// Pad to exactly targetWidth-3 if needed (in case of wide chars)
	for width < targetWidth-3 {
		result += " "
		width++
	}

	return result + "..."
}

// dotLeader creates a dot-leader line: "  Label .............. Value"
func dotLeader(label, value string, totalWidth int) string {
	prefix := "  " + label + " "
	suffix := " " + value
	dotsNeeded := totalWidth - lipgloss.Width(prefix) - lipgloss.Width(suffix)
	if dotsNeeded < 3 {
		dotsNeeded = 3
	}
	return prefix + strings.Repeat(".", dotsNeeded) + suffix
}

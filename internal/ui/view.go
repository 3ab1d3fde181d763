package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pick/internal/window"
)

// renderMain renders header, query line, list and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderQuery())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the list name, match counts and load health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	e := m.engine()

	parts := []string{bg.Render("pick", styles.Logo)}

	name := m.active
	if len(m.lists) > 1 {
		name = fmt.Sprintf("%s [%d/%d]", m.active, slices.Index(m.lists, m.active)+1, len(m.lists))
	}
	parts = append(parts, bg.Render(name, styles.AccentText))
	parts = append(parts, bg.Render(fmt.Sprintf("%d/%d", e.Len(), e.Total()), styles.Text))

	if e.SelectionMode() == window.MultiSelect {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", len(e.Selection())), styles.SuccessText))
	}

	status := m.status[m.active]
	switch {
	case status.IsOffline():
		parts = append(parts, bg.Render(classifyLoadError(status.LastError), styles.DangerText))
	case status.LastError != nil:
		parts = append(parts, bg.Render("RETRYING", styles.WarningText))
	case !status.Loaded():
		parts = append(parts, bg.Render("loading…", styles.MutedText))
	case m.width >= LayoutWideWidth:
		parts = append(parts, bg.Render("updated "+humanizeDuration(time.Since(status.LastUpdated)), styles.FaintText))
	}

	if m.width < LayoutCompactWidth && len(parts) > 3 {
		parts = parts[:3]
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

// renderQuery renders the query input line.
func (m Model) renderQuery() string {
	styles := m.theme.Styles()
	in := m.input
	in.PromptStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Accent)).
		Background(lipgloss.Color(m.theme.SurfaceAlt))
	in.TextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.SurfaceAlt))
	in.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Faint)).
		Background(lipgloss.Color(m.theme.SurfaceAlt))
	return styles.Query.Width(m.width).MaxWidth(m.width).Render(in.View())
}

// renderList renders the visible part of the materialized window. The engine
// also builds buffer rows around the viewport; they are skipped here.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	e := m.engine()
	height := m.listHeight()
	lines := make([]string, 0, height)

	if e.Len() == 0 {
		msg := "no matches"
		switch {
		case e.Total() == 0 && !m.status[m.active].Loaded():
			msg = "loading…"
		case e.Total() == 0:
			msg = "empty list"
		}
		lines = append(lines, styles.MutedText.Render(padRight("  "+msg, m.width)))
	}

	multi := e.SelectionMode() == window.MultiSelect
	first := firstVisible(e)
	for _, row := range e.VisibleSlice().Rows {
		if row.Index < first {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, m.renderRow(row, multi, styles))
		for k := 1; k < m.rowsPerItem && len(lines) < height; k++ {
			lines = append(lines, "")
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row window.Row[string], multi bool, styles Styles) string {
	cursor := "  "
	if row.Active {
		cursor = "▌ "
	}
	marker := ""
	if multi {
		marker = "○ "
		if row.Selected {
			marker = "● "
		}
	}

	avail := m.width - len([]rune(cursor)) - len([]rune(marker))
	label := padRight(truncate(sanitizeLabel(row.Item.Label), avail), avail)

	if row.Active {
		active := styles.Active
		bg := NewBgStyle(m.theme.SelectionBg)
		markerStyle := active
		if row.Selected {
			markerStyle = styles.Marker
		}
		return bg.FillLine(bg.Render(cursor, styles.AccentText)+bg.Render(marker, markerStyle)+bg.Render(label, active), m.width)
	}

	markerStyle := styles.FaintText
	labelStyle := styles.Text
	if row.Selected {
		markerStyle = styles.Marker
		labelStyle = styles.SuccessText.Bold(false)
	}
	return cursor + markerStyle.Render(marker) + labelStyle.Render(label)
}

// renderFooter renders the short help line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	h := m.help
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	return NewBgStyle(m.theme.Surface).FillLine(h.ShortHelpView(m.keys.ShortHelp()), m.width)
}

// firstVisible is the index of the item at the top edge of the viewport.
func firstVisible(e *window.Engine[string]) int {
	if e.ItemHeight() <= 0 {
		return 0
	}
	return int(e.ScrollTop() / e.ItemHeight())
}

// classifyLoadError turns a loader error into a short header badge.
func classifyLoadError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status"):
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// humanizeDuration formats an age for the header.
func humanizeDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 12
	idColumnWidth  = 24
)

// renderMain renders the header, command bar, redirect table and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{
		styles.Logo.Render("redirectctl"),
		styles.MutedText.Render(m.apiURL),
	}

	switch {
	case snap.IsOffline():
		parts = append(parts, styles.DangerText.Render("offline"))
	case snap.LastError != nil:
		parts = append(parts, styles.WarningText.Render("degraded"))
	case snap.HasPage:
		parts = append(parts, styles.SuccessText.Render("online"))
	default:
		parts = append(parts, styles.FaintText.Render("connecting"))
	}

	if snap.HasPage {
		parts = append(parts,
			styles.Text.Render(fmt.Sprintf("%d total", snap.Page.TotalCount)),
			styles.FaintText.Render(fmt.Sprintf("page %d · cursor %s", len(m.history)+1, displayCursor(snap.Cursor))),
		)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.AccentText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(hints, "  "))
}

func (m Model) renderTable() string {
	styles := m.theme.Styles()
	items := m.snapshot.Page.RedirectList

	// Leave room for header, command bar, column titles and footer.
	rows := max(m.height-5, 1)

	fromW, toW := m.columnWidths()
	title := " " + padRight("FROM", fromW) + "  " + padRight("TO", toW) + "  " + "ID"

	var b strings.Builder
	b.WriteString(styles.ColumnTitle.Render(title))
	b.WriteString("\n")

	if len(items) == 0 {
		msg := "No redirects"
		if !m.snapshot.HasPage {
			msg = "Waiting for the redirect api..."
		}
		b.WriteString(styles.FaintText.Render(" " + msg))
		return b.String()
	}

	// Keep the selection on screen.
	start := 0
	if m.selectedRow >= rows {
		start = m.selectedRow - rows + 1
	}
	end := min(start+rows, len(items))

	for i := start; i < end; i++ {
		item := items[i]
		line := " " + padRight(truncate(item.From, fromW), fromW) +
			"  " + padRight(truncate(item.To, toW), toW) +
			"  " + truncate(item.ID, idColumnWidth)
		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// columnWidths splits the space left after the id column between from and to.
func (m Model) columnWidths() (int, int) {
	avail := m.width - idColumnWidth - 6
	half := max(avail/2, minColumnWidth)
	return half, half
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var left string
	switch {
	case m.notice != "" && m.noticeIsErr:
		left = styles.DangerText.Render(m.notice)
	case m.notice != "":
		left = styles.SuccessText.Render(m.notice)
	case snap.LastError != nil:
		left = styles.DangerText.Render(truncate(snap.LastError.Error(), max(m.width-30, 20)))
	}

	var right string
	if !snap.LastUpdated.IsZero() {
		if age := humanizeDuration(time.Since(snap.LastUpdated)); age == "now" {
			right = "updated just now"
		} else {
			right = "updated " + age + " ago"
		}
	}
	if snap.Page.HasMore() {
		right = "more → n  " + right
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Footer.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func displayCursor(cursor string) string {
	if cursor == "" {
		return "0"
	}
	return cursor
}

package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stdout
	verbose bool

	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray
	accentColor    = lipgloss.Color("#FFD700") // Gold

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Icon styles
	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	star = lipgloss.NewStyle().
		Foreground(accentColor).
		SetString("★")

	// Item styles
	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FAFAFA"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Box style for important info
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)
)

// SetOutput redirects all status output, e.g. to stderr when results go to stdout.
// A nil writer restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetVerbose enables step-by-step output
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// PrintTitle prints a major title (for app name or major sections)
func PrintTitle(title string) {
	emit(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	emit(headerStyle.Render("\n▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	emit(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	emit(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	emit(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	emit(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	emit(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	emit(stepStyle.Render(infoStyle.Render(message)))
}

// PrintHighlight prints highlighted text
func PrintHighlight(message string) {
	emit(stepStyle.Render(star.String() + " " + highlightStyle.Render(message)))
}

// PrintBox prints text in a rounded box
func PrintBox(content string) {
	emit(boxStyle.Render(content))
}

// PrintList prints a titled list of items
func PrintList(title string, items []string) {
	emit(stepStyle.Render(title + ":"))
	for _, item := range items {
		PrintItem(item)
	}
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	separator := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("─────────────────────────────────────────────")
	emit(separator)
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true)
	emit(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// Table prints fixed-width columns separated by │
type Table struct {
	Widths []int
}

// NewTable creates a table with the given column widths
func NewTable(widths ...int) *Table {
	return &Table{Widths: widths}
}

// Row prints a formatted table row with columns
func (t *Table) Row(columns ...string) {
	if len(columns) == 0 {
		return
	}
	emit(stepStyle.Render(t.format(columns, "...")))
}

// Header prints a table header followed by a separator line
func (t *Table) Header(headers ...string) {
	headerStyle := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true)
	emit(stepStyle.Render(headerStyle.Render(t.format(headers, ""))))

	separator := ""
	for i := range headers {
		if i >= len(t.Widths) {
			break
		}
		separator += strings.Repeat("─", t.Widths[i])
		if i < len(headers)-1 && i < len(t.Widths)-1 {
			separator += "─┼─"
		}
	}
	emit(stepStyle.Render(infoStyle.Render(separator)))
}

// format truncates or pads each column to its width
func (t *Table) format(columns []string, ellipsis string) string {
	row := ""
	for i, col := range columns {
		if i >= len(t.Widths) {
			break
		}
		width := t.Widths[i]

		if len(col) > width {
			col = col[:width-len(ellipsis)] + ellipsis
		} else {
			col = col + strings.Repeat(" ", width-len(col))
		}

		row += col
		if i < len(columns)-1 && i < len(t.Widths)-1 {
			row += " │ "
		}
	}
	return row
}

// IsVerbose checks if verbose output is enabled
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	// The CI environment variable always enables verbose output
	return verbose || os.Getenv("CI") != ""
}

// PrintProgress prints a progress indicator
func PrintProgress(current, total int, message string) {
	if IsVerbose() || total == 0 {
		return // Don't print progress in verbose mode
	}

	barWidth := 30
	filled := (current * barWidth) / total
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	pct := (current * 100) / total

	mu.Lock()
	defer mu.Unlock()
	// Use carriage return to overwrite the line
	fmt.Fprintf(out, "\r  [%s] %d%% %s", bar, pct, message)

	// Print newline on completion
	if current >= total {
		fmt.Fprintln(out)
	}
}

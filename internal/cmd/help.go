package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderConvertHelp renders the help text for the convert command with lipgloss styling
func renderConvertHelp() string {
	// Define styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	// Inline mode
	b.WriteString(sectionStyle.Render("Inline mode - convert boxes given on the command line"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("box3dmode convert -s lidar -d cam -b 1,2,3,4,5,6,0"))
	b.WriteString("\n\n")

	// Inline mode without yaw
	b.WriteString(sectionStyle.Render("Inline mode - boxes without yaw, written to a file"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("box3dmode convert -s cam -d depth --no-yaw -b 1,1.5,10,4,1.5,1.8 -o out.yaml"))
	b.WriteString("\n\n")

	// Custom matrix
	b.WriteString(sectionStyle.Render("Custom extrinsics - rotate the heading vector with the matrix"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("box3dmode convert -s lidar -d cam --correct-yaw \\"))
	b.WriteString("\n")
	b.WriteString("    " + commandStyle.Render("--rt-mat \"0,-1,0,0.1;0,0,-1,-0.2;1,0,0,0.3\" -b 1,2,3,4,5,6,0"))
	b.WriteString("\n\n")

	// Box layout
	b.WriteString(sectionStyle.Render("Box fields:"))
	b.WriteString("\n")

	// Define field descriptions
	fields := []struct {
		field string
		desc  string
	}{
		{"x,y,z", "Box reference point (bottom center, camera: center of the bottom face with y down)"},
		{"dx,dy,dz", "Box size along the mode's x, y and z axes"},
		{"yaw", "Heading in radians (omit with --no-yaw)"},
		{"...", "Extra fields such as velocity are copied unchanged"},
	}

	// Calculate max field width for alignment
	maxWidth := 0
	for _, f := range fields {
		if len(f.field) > maxWidth {
			maxWidth = len(f.field)
		}
	}

	// Render fields with proper alignment
	for _, f := range fields {
		padding := strings.Repeat(" ", maxWidth-len(f.field)+2)
		b.WriteString("  " + flagStyle.Render(f.field) + padding + commentStyle.Render(f.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// YAML job mode
	b.WriteString(sectionStyle.Render("YAML job mode"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("box3dmode convert jobs.yaml"))
	b.WriteString("\n")

	return b.String()
}

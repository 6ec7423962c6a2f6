package inspect

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/models"
	"github.com/philipparndt/box3dmode/internal/ui"
)

// BoxPrinter handles printing box sets and their details
type BoxPrinter struct {
	// MaxRows limits the table length, 0 prints every box
	MaxRows int
}

// NewBoxPrinter creates a new BoxPrinter
func NewBoxPrinter() *BoxPrinter {
	return &BoxPrinter{MaxRows: 20}
}

// FormatVector formats three coordinates as "(x, y, z)"
func FormatVector(x, y, z float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", x, y, z)
}

// formatExtras formats the columns after the yaw (or size) field
func formatExtras(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strings.Join(parts, ", ")
}

// PrintResults prints every converted result
func (p *BoxPrinter) PrintResults(results []models.Result) error {
	if len(results) == 0 {
		ui.PrintStep("No results found")
		return nil
	}
	for _, r := range results {
		boxes, err := boxmode.NewBoxes(r.Mode, r.Boxes, r.WithYaw)
		if err != nil {
			return fmt.Errorf("result %s: %w", r.Name, err)
		}
		p.PrintBoxSet(r.Name, boxes)
	}
	return nil
}

// PrintBoxSet prints one box set as a table followed by its bounds
func (p *BoxPrinter) PrintBoxSet(name string, boxes *boxmode.Boxes) {
	ui.PrintHeader(fmt.Sprintf("%s: %s", name, boxes))

	if boxes.Len() == 0 {
		ui.PrintStep("No boxes")
		return
	}

	table := ui.NewTable(4, 26, 22, 8, 24)
	table.Header("#", "Center", "Size", "Yaw deg", "Extra")

	extraFrom := 6
	if boxes.WithYaw() {
		extraFrom = 7
	}

	rows := boxes.Len()
	if p.MaxRows > 0 && rows > p.MaxRows {
		rows = p.MaxRows
	}
	for i := 0; i < rows; i++ {
		c, s := boxes.Center(i), boxes.Size(i)
		yaw := "-"
		if boxes.WithYaw() {
			yaw = strconv.FormatFloat(boxes.Yaw(i)*180/math.Pi, 'f', 1, 64)
		}
		table.Row(
			strconv.Itoa(i),
			FormatVector(c.X, c.Y, c.Z),
			FormatVector(s.X, s.Y, s.Z),
			yaw,
			formatExtras(boxes.Row(i)[extraFrom:]),
		)
	}
	if rows < boxes.Len() {
		ui.PrintInfo(fmt.Sprintf("... %d more box(es)", boxes.Len()-rows))
	}

	if bounds, err := boxes.Bounds(); err == nil {
		ui.PrintKeyValue("Bounds", bounds.String())
		ui.PrintKeyValue("Extent", FormatVector(bounds.Width(), bounds.Height(), bounds.Depth()))
	}
}

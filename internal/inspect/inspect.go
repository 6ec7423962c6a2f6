package inspect

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/config"
	"github.com/philipparndt/box3dmode/internal/models"
	"github.com/philipparndt/box3dmode/internal/ui"
)

// Inspector provides functionality to inspect job and result files
type Inspector struct {
	printer *BoxPrinter
}

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{printer: NewBoxPrinter()}
}

// Inspect reads and displays the box sets of a job or result YAML file
func (i *Inspector) Inspect(filename string) error {
	// Check if file exists
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	ui.PrintHeader(fmt.Sprintf("Inspecting: %s", filepath.Base(filename)))

	results, err := i.ReadResults(filename)
	if err != nil {
		return err
	}
	if results != nil {
		ui.PrintStep(fmt.Sprintf("Result file with %d set(s)", len(results.Results)))
		return i.printer.PrintResults(results.Results)
	}

	jobs, err := config.NewLoader().Load(filename)
	if err != nil {
		return fmt.Errorf("error reading job file: %w", err)
	}
	ui.PrintStep(fmt.Sprintf("Job file with %d job(s)", len(jobs.Jobs)))
	if jobs.Output != "" {
		ui.PrintKeyValue("Output", jobs.Output)
	}
	for _, job := range jobs.Jobs {
		boxes, err := boxmode.NewBoxes(*job.Src, job.Boxes, job.HasYaw())
		if err != nil {
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
		i.printer.PrintBoxSet(fmt.Sprintf("%s (%s → %s)", job.Name, *job.Src, *job.Dst), boxes)
	}
	return nil
}

// ReadResults parses a result file. It returns nil when the file has no results section.
func (i *Inspector) ReadResults(filename string) (*models.ResultFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if _, ok := probe["results"]; !ok {
		return nil, nil
	}

	var results models.ResultFile
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return &results, nil
}

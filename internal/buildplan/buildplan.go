package buildplan

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/chroma/v2/quick"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/config"
	"github.com/philipparndt/box3dmode/internal/inspect"
	"github.com/philipparndt/box3dmode/internal/models"
	"github.com/philipparndt/box3dmode/internal/preconditions"
	"github.com/philipparndt/box3dmode/internal/ui"
)

// InlineJob describes a single conversion given on the command line
type InlineJob struct {
	Name       string
	Src        boxmode.Mode
	Dst        boxmode.Mode
	Boxes      []string // comma separated fields, one box per entry
	WithYaw    bool
	CorrectYaw bool
	RTMat      string // rows separated by ';', values by ','
}

// Request selects the plan: a job file or an inline job
type Request struct {
	ConfigFile string
	Inline     *InlineJob
	Output     string // overrides the job file output; empty writes to Stdout
	Plain      bool   // disable syntax highlighting on Stdout
	Workers    int
	Stdout     io.Writer
}

// BuildStep represents a single step in the build plan
type BuildStep interface {
	Name() string
	Execute(ctx context.Context, state *State) error
}

// BuildPlan contains all steps needed to load, convert and write boxes
type BuildPlan struct {
	Steps []BuildStep
	State *State

	log *zap.SugaredLogger
}

// State holds shared data between build steps
type State struct {
	Jobs       *models.JobFile
	Requests   []models.ConversionRequest
	Results    []models.Result
	OutputFile string
}

// Planner creates build plans from command line requests
type Planner struct {
	log *zap.SugaredLogger
}

// NewPlanner creates a new build planner. A nil logger discards log output.
func NewPlanner(log *zap.SugaredLogger) *Planner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Planner{log: log}
}

// CreatePlan builds the step list for a request
func (p *Planner) CreatePlan(req Request) (*BuildPlan, error) {
	if (req.ConfigFile == "") == (req.Inline == nil) {
		return nil, fmt.Errorf("either a job file or inline boxes must be given")
	}
	if req.ConfigFile != "" && !isYAML(req.ConfigFile) {
		return nil, fmt.Errorf("unknown file type: %s", req.ConfigFile)
	}

	plan := &BuildPlan{State: &State{}, log: p.log}

	// Step 1: Load jobs
	if req.ConfigFile != "" {
		plan.Steps = append(plan.Steps, &LoadJobsStep{ConfigPath: req.ConfigFile, log: p.log})
	} else {
		plan.Steps = append(plan.Steps, &ParseInlineJobStep{Job: *req.Inline})
	}

	// Step 2: Check that inputs are readable and the output is writable
	plan.Steps = append(plan.Steps, &CheckPreconditionsStep{ConfigPath: req.ConfigFile, Output: req.Output})

	// Step 3: Convert all jobs
	plan.Steps = append(plan.Steps, &ConvertBoxesStep{Workers: req.Workers, log: p.log})

	// Step 4: Write results
	stdout := req.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	plan.Steps = append(plan.Steps, &WriteResultsStep{
		Output: req.Output,
		Plain:  req.Plain,
		Stdout: stdout,
		log:    p.log,
	})

	return plan, nil
}

// Execute runs all steps in the plan
func (p *BuildPlan) Execute(ctx context.Context) error {
	if ui.IsVerbose() {
		ui.PrintTitle("Build Plan Execution")
		ui.PrintInfo(fmt.Sprintf("Total steps: %d", len(p.Steps)))
		ui.PrintSeparator()
	}

	for i, step := range p.Steps {
		if ui.IsVerbose() {
			ui.PrintHeader(fmt.Sprintf("Step %d/%d: %s", i+1, len(p.Steps), step.Name()))
		}
		p.log.Debugw("executing step", "step", step.Name(), "index", i+1)
		if err := step.Execute(ctx, p.State); err != nil {
			return err
		}
	}

	ui.PrintSeparator()
	ui.PrintSuccess("Conversion completed successfully!")
	if p.State.OutputFile != "" {
		// Convert to relative path if possible
		relPath, err := filepath.Rel(".", p.State.OutputFile)
		if err != nil {
			relPath = p.State.OutputFile
		}
		ui.PrintKeyValue("Output file", relPath)
	}
	return nil
}

// isYAML reports whether a path has a YAML extension
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// pluralize returns "s" if count != 1, empty string otherwise
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// LoadJobsStep loads and validates a YAML job file
type LoadJobsStep struct {
	ConfigPath string

	log *zap.SugaredLogger
}

func (s *LoadJobsStep) Name() string {
	return "Load job file"
}

func (s *LoadJobsStep) Execute(_ context.Context, state *State) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(s.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	requests, err := loader.ConvertToRequests(cfg)
	if err != nil {
		return err
	}
	state.Jobs = cfg
	state.Requests = requests
	state.OutputFile = cfg.Output
	ui.PrintSuccess(fmt.Sprintf("Loaded %d job%s", len(cfg.Jobs), pluralize(len(cfg.Jobs))))

	// Display job summary only in verbose mode
	if ui.IsVerbose() {
		for _, job := range cfg.Jobs {
			ui.PrintItem(fmt.Sprintf("%s: %d box%s %s → %s", job.Name, len(job.Boxes), pluralizeBox(len(job.Boxes)), *job.Src, *job.Dst))
		}
	}
	s.log.Debugw("loaded job file", "path", s.ConfigPath, "jobs", len(cfg.Jobs))
	return nil
}

func pluralizeBox(count int) string {
	if count == 1 {
		return ""
	}
	return "es"
}

// ParseInlineJobStep turns command line boxes into a single job
type ParseInlineJobStep struct {
	Job InlineJob
}

func (s *ParseInlineJobStep) Name() string {
	return "Parse inline boxes"
}

func (s *ParseInlineJobStep) Execute(_ context.Context, state *State) error {
	job := models.Job{
		Name:       s.Job.Name,
		Src:        &s.Job.Src,
		Dst:        &s.Job.Dst,
		WithYaw:    &s.Job.WithYaw,
		CorrectYaw: s.Job.CorrectYaw,
	}
	if job.Name == "" {
		job.Name = "inline"
	}

	for i, arg := range s.Job.Boxes {
		row, err := ParseFloats(arg, ",")
		if err != nil {
			return fmt.Errorf("invalid box %d %q: %w", i, arg, err)
		}
		job.Boxes = append(job.Boxes, row)
	}

	if s.Job.RTMat != "" {
		for _, part := range strings.Split(s.Job.RTMat, ";") {
			row, err := ParseFloats(part, ",")
			if err != nil {
				return fmt.Errorf("invalid rt_mat %q: %w", s.Job.RTMat, err)
			}
			job.RTMat = append(job.RTMat, row)
		}
	}

	cfg := &models.JobFile{Jobs: []models.Job{job}}
	loader := config.NewLoader()
	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("invalid boxes: %w", err)
	}
	requests, err := loader.ConvertToRequests(cfg)
	if err != nil {
		return err
	}
	state.Jobs = cfg
	state.Requests = requests
	ui.PrintSuccess(fmt.Sprintf("Parsed %d box%s", len(job.Boxes), pluralizeBox(len(job.Boxes))))
	return nil
}

// ParseFloats parses a separated list of numbers
func ParseFloats(s, sep string) ([]float64, error) {
	fields := strings.Split(s, sep)
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// CheckPreconditionsStep checks the job file, its boxes files and the output path
type CheckPreconditionsStep struct {
	ConfigPath string
	Output     string
}

func (s *CheckPreconditionsStep) Name() string {
	return "Check preconditions"
}

func (s *CheckPreconditionsStep) Execute(_ context.Context, state *State) error {
	var inputs []string
	if s.ConfigPath != "" {
		inputs = append(inputs, s.ConfigPath)
	}
	if state.Jobs != nil {
		for _, job := range state.Jobs.Jobs {
			if job.BoxesFile != "" {
				inputs = append(inputs, job.BoxesFile)
			}
		}
	}

	output := s.Output
	if output == "" {
		output = state.OutputFile
	}
	if err := preconditions.Check(inputs, output); err != nil {
		return err
	}
	if ui.IsVerbose() {
		ui.PrintSuccess(fmt.Sprintf("Validated %d input file%s", len(inputs), pluralize(len(inputs))))
	}
	return nil
}

// ConvertBoxesStep converts every job, running jobs in parallel
type ConvertBoxesStep struct {
	Workers int

	log *zap.SugaredLogger
}

func (s *ConvertBoxesStep) Name() string {
	return "Convert boxes"
}

func (s *ConvertBoxesStep) Execute(ctx context.Context, state *State) error {
	if len(state.Requests) == 0 {
		return fmt.Errorf("no jobs to convert")
	}

	results := make([]models.Result, len(state.Requests))
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for i, req := range state.Requests {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := req.Boxes.ConvertTo(req.Dst, req.Options...)
			if err != nil {
				return fmt.Errorf("job %s: %w", req.Name, err)
			}
			results[i] = models.Result{
				Name:    req.Name,
				Mode:    out.Mode(),
				WithYaw: out.WithYaw(),
				Boxes:   out.Rows(),
			}
			s.log.Debugw("converted job", "job", req.Name, "src", req.Boxes.Mode(), "dst", req.Dst, "boxes", out.Len())
			ui.PrintProgress(int(done.Add(1)), len(state.Requests), req.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	state.Results = results
	ui.PrintSuccess(fmt.Sprintf("Converted %d job%s", len(results), pluralize(len(results))))

	if ui.IsVerbose() {
		if err := inspect.NewBoxPrinter().PrintResults(results); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultsStep writes the converted boxes as YAML
type WriteResultsStep struct {
	Output string
	Plain  bool
	Stdout io.Writer

	log *zap.SugaredLogger
}

func (s *WriteResultsStep) Name() string {
	return "Write results"
}

func (s *WriteResultsStep) Execute(_ context.Context, state *State) error {
	data, err := yaml.Marshal(models.ResultFile{Results: state.Results})
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if s.Output != "" {
		state.OutputFile = s.Output
	}
	if state.OutputFile == "" {
		return s.writeStdout(data)
	}

	if err := os.WriteFile(state.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	s.log.Debugw("wrote results", "path", state.OutputFile, "bytes", len(data))
	return nil
}

// writeStdout prints the results, highlighted unless plain output is requested
func (s *WriteResultsStep) writeStdout(data []byte) error {
	if s.Plain || !isTerminal(s.Stdout) {
		_, err := s.Stdout.Write(data)
		return err
	}
	if err := quick.Highlight(s.Stdout, string(data), "yaml", "terminal256", "monokai"); err != nil {
		s.log.Warnw("highlighting failed, writing plain output", "error", err)
		_, err = s.Stdout.Write(data)
		return err
	}
	return nil
}

// isTerminal reports whether w is an interactive character device
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

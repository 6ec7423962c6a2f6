package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/buildplan"
	"github.com/philipparndt/box3dmode/internal/inspect"
	"github.com/philipparndt/box3dmode/internal/ui"
	"github.com/philipparndt/box3dmode/version"
)

type CLI struct {
	Verbose bool `help:"Show every step and debug logs" short:"v"`

	Convert    *ConvertCmd    `cmd:"" help:"Convert boxes between LiDAR, camera and depth coordinates"`
	Inspect    *InspectCmd    `cmd:"" help:"Inspect a job or result file and show its boxes"`
	Modes      *ModesCmd      `cmd:"" help:"List coordinate systems and supported conversions"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`
}

// AfterApply configures verbose output once flags are parsed
func (cli *CLI) AfterApply() error {
	ui.SetVerbose(cli.Verbose)
	return nil
}

type ConvertCmd struct {
	Config     string   `arg:"" optional:"" help:"YAML job file. Omit to convert --box values."`
	Src        string   `help:"Source coordinate system" short:"s" enum:"lidar,cam,camera,depth" default:"lidar"`
	Dst        string   `help:"Destination coordinate system" short:"d" enum:"lidar,cam,camera,depth" default:"cam"`
	Box        []string `help:"Box fields x,y,z,dx,dy,dz[,yaw,...]. Repeat for more boxes." short:"b" sep:"none"`
	NoYaw      bool     `help:"Boxes carry no yaw field"`
	CorrectYaw bool     `help:"Rotate the heading vector instead of applying the closed-form offset"`
	RTMat      string   `help:"Custom 3x3, 3x4 or 4x4 matrix, rows separated by ';' and values by ','" name:"rt-mat"`
	Output     string   `help:"Output file path (default: job file output or stdout)" short:"o"`
	Workers    int      `help:"Number of jobs converted in parallel" short:"j" default:"4"`
	Plain      bool     `help:"Disable syntax highlighting of YAML on stdout"`

	stdout io.Writer `kong:"-"`
}

// Help adds additional help text with examples
func (c *ConvertCmd) Help() string {
	return renderConvertHelp()
}

// checkInputs rejects flag combinations that kong cannot express
func (c *ConvertCmd) checkInputs() error {
	if c.Config == "" && len(c.Box) == 0 {
		return fmt.Errorf("either a job file or at least one --box is required")
	}
	if c.Config != "" && len(c.Box) > 0 {
		return fmt.Errorf("cannot mix a job file and --box values")
	}
	if c.Config != "" && c.RTMat != "" {
		return fmt.Errorf("--rt-mat only applies to --box values; set rt_mat in the job file instead")
	}
	return nil
}

// request converts the parsed flags into a build plan request
func (c *ConvertCmd) request() (buildplan.Request, error) {
	if err := c.checkInputs(); err != nil {
		return buildplan.Request{}, err
	}

	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	req := buildplan.Request{
		ConfigFile: c.Config,
		Output:     c.Output,
		Plain:      c.Plain,
		Workers:    c.Workers,
		Stdout:     stdout,
	}
	if c.Config != "" {
		return req, nil
	}

	src, err := boxmode.ParseMode(c.Src)
	if err != nil {
		return req, err
	}
	dst, err := boxmode.ParseMode(c.Dst)
	if err != nil {
		return req, err
	}
	req.Inline = &buildplan.InlineJob{
		Src:        src,
		Dst:        dst,
		Boxes:      c.Box,
		WithYaw:    !c.NoYaw,
		CorrectYaw: c.CorrectYaw,
		RTMat:      c.RTMat,
	}
	return req, nil
}

func (c *ConvertCmd) Run(log *zap.SugaredLogger) error {
	req, err := c.request()
	if err != nil {
		return err
	}

	// Results may go to stdout, keep status messages apart from them
	if c.stdout == nil {
		ui.SetOutput(os.Stderr)
		defer ui.SetOutput(nil)
	}

	// Create build plan
	planner := buildplan.NewPlanner(log)
	plan, err := planner.CreatePlan(req)
	if err != nil {
		return fmt.Errorf("failed to create build plan: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute the plan
	return plan.Execute(ctx)
}

type InspectCmd struct {
	File string `arg:"" help:"Job or result YAML file to inspect"`
}

func (c *InspectCmd) Run() error {
	inspector := inspect.NewInspector()
	return inspector.Inspect(c.File)
}

type ModesCmd struct{}

func (c *ModesCmd) Run() error {
	ui.PrintHeader("Coordinate systems")
	table := ui.NewTable(8, 34, 18, 6)
	table.Header("Mode", "Axes", "Origin", "Yaw")
	for _, m := range boxmode.Modes() {
		o := m.Origin()
		table.Row(m.String(), modeAxes(m), inspect.FormatVector(o[0], o[1], o[2]), fmt.Sprintf("%c", "xyz"[m.YawAxis()]))
	}

	ui.PrintHeader("Default rotations")
	for _, src := range boxmode.Modes() {
		for _, dst := range boxmode.Modes() {
			if src == dst {
				continue
			}
			rt, err := boxmode.DefaultRTMat(src, dst)
			if err != nil {
				return err
			}
			rows := make([]string, 3)
			for i := range rows {
				rows[i] = fmt.Sprintf("[%2g %2g %2g]", rt.At(i, 0), rt.At(i, 1), rt.At(i, 2))
			}
			ui.PrintKeyValue(fmt.Sprintf("%-6s → %-6s", src, dst), strings.Join(rows, " "))
		}
	}
	return nil
}

// modeAxes describes where the x, y and z axes of a mode point
func modeAxes(m boxmode.Mode) string {
	switch m {
	case boxmode.LIDAR:
		return "x front, y left, z up"
	case boxmode.CAM:
		return "x right, y down, z front"
	case boxmode.DEPTH:
		return "x right, y front, z up"
	default:
		return "unknown"
	}
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// newLogger builds the console logger; without verbose output logs are discarded
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding:          "console",
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("box3dmode"),
		kong.Description("Convert 3D bounding boxes between LiDAR, camera and depth coordinates"),
		kong.UsageOnError(),
	)

	log, err := newLogger(cli.Verbose)
	if err != nil {
		ui.PrintError("Failed to create logger: " + err.Error())
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := ctx.Run(log); err != nil {
		ui.PrintError(err.Error())
		_ = log.Sync()
		os.Exit(1)
	}
}

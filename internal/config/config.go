package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/geometry"
	"github.com/philipparndt/box3dmode/internal/models"
)

// Loader handles loading and validating YAML job files
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, resolves and validates a YAML job file
func (l *Loader) Load(configPath string) (*models.JobFile, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML, rejecting unknown keys such as misspelled options
	var config models.JobFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Convert relative paths to absolute paths (relative to config file)
	absConfigDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of config directory: %w", err)
	}

	for i := range config.Jobs {
		job := &config.Jobs[i]
		if job.BoxesFile == "" {
			continue
		}
		if !filepath.IsAbs(job.BoxesFile) {
			job.BoxesFile = filepath.Join(absConfigDir, job.BoxesFile)
		}
		rows, err := l.LoadBoxes(job.BoxesFile)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", job.Name, err)
		}
		job.Boxes = append(job.Boxes, rows...)
	}

	if config.Output != "" && !filepath.IsAbs(config.Output) {
		config.Output = filepath.Join(absConfigDir, config.Output)
	}

	// Validate the configuration
	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadBoxes reads a YAML file holding a list of box rows
func (l *Loader) LoadBoxes(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boxes file: %w", err)
	}
	var rows [][]float64
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse boxes file %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// Validate checks if the configuration is valid. All problems are reported together.
func (l *Loader) Validate(config *models.JobFile) error {
	if len(config.Jobs) == 0 {
		return fmt.Errorf("at least one job must be defined")
	}

	var errs error
	seen := make(map[string]bool)
	for i, job := range config.Jobs {
		if job.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("job %d: name is required", i+1))
		} else if seen[job.Name] {
			errs = multierr.Append(errs, fmt.Errorf("job %s: duplicate name", job.Name))
		}
		seen[job.Name] = true

		errs = multierr.Append(errs, l.validateJob(job, i))
	}
	return errs
}

// validateJob validates a single job
func (l *Loader) validateJob(job models.Job, index int) error {
	label := job.Name
	if label == "" {
		label = fmt.Sprintf("%d", index+1)
	}

	var errs error
	switch {
	case job.Src == nil:
		errs = multierr.Append(errs, fmt.Errorf("job %s: src is required", label))
	case !job.Src.Valid():
		errs = multierr.Append(errs, fmt.Errorf("job %s: unknown src %s", label, *job.Src))
	}
	switch {
	case job.Dst == nil:
		errs = multierr.Append(errs, fmt.Errorf("job %s: dst is required", label))
	case !job.Dst.Valid():
		errs = multierr.Append(errs, fmt.Errorf("job %s: unknown dst %s", label, *job.Dst))
	}

	if job.RTMat != nil && job.Extrinsic != nil {
		errs = multierr.Append(errs, fmt.Errorf("job %s: cannot mix 'rt_mat' and 'extrinsic' - use one or the other", label))
	}
	if job.RTMat != nil {
		if _, err := matrixFromRows(job.RTMat); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("job %s: rt_mat: %w", label, err))
		}
	}
	if job.Extrinsic != nil && job.Src != nil && job.Dst != nil && *job.Src == *job.Dst {
		errs = multierr.Append(errs, fmt.Errorf("job %s: extrinsic has no effect when src and dst are the same", label))
	}

	need := 6
	if job.HasYaw() {
		need = 7
	}
	for j, row := range job.Boxes {
		if len(row) < need {
			errs = multierr.Append(errs, fmt.Errorf("job %s, box %d: need at least %d fields (with_yaw=%t), got %d",
				label, j, need, job.HasYaw(), len(row)))
		} else if len(row) != len(job.Boxes[0]) {
			errs = multierr.Append(errs, fmt.Errorf("job %s, box %d: has %d fields, box 0 has %d",
				label, j, len(row), len(job.Boxes[0])))
		}
	}

	return errs
}

// matrixFromRows builds a 3x3, 3x4 or 4x4 matrix from nested rows
func matrixFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != 3 && len(rows) != 4 {
		return nil, fmt.Errorf("%w: got %d rows", geometry.ErrInvalidMatrix, len(rows))
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d values, row 0 has %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	switch {
	case len(rows) == 3 && (cols == 3 || cols == 4):
	case len(rows) == 4 && cols == 4:
	default:
		return nil, fmt.Errorf("%w: got %dx%d", geometry.ErrInvalidMatrix, len(rows), cols)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// ConvertToRequests turns validated jobs into converter requests
func (l *Loader) ConvertToRequests(config *models.JobFile) ([]models.ConversionRequest, error) {
	requests := make([]models.ConversionRequest, 0, len(config.Jobs))

	for _, job := range config.Jobs {
		if job.Src == nil || job.Dst == nil {
			return nil, fmt.Errorf("job %s: src and dst are required", job.Name)
		}
		boxes, err := boxmode.NewBoxes(*job.Src, job.Boxes, job.HasYaw())
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", job.Name, err)
		}

		opts := []boxmode.Option{boxmode.CorrectYaw(job.CorrectYaw)}
		rt, err := l.rtMatrix(job)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", job.Name, err)
		}
		if rt != nil {
			opts = append(opts, boxmode.WithRTMat(rt))
		}

		requests = append(requests, models.ConversionRequest{
			Name:    job.Name,
			Boxes:   boxes,
			Dst:     *job.Dst,
			Options: opts,
		})
	}

	return requests, nil
}

// rtMatrix returns the job's rotation matrix, or nil to use the pair default
func (l *Loader) rtMatrix(job models.Job) (*mat.Dense, error) {
	switch {
	case job.RTMat != nil:
		return matrixFromRows(job.RTMat)
	case job.Extrinsic != nil && *job.Src != *job.Dst:
		base, err := boxmode.DefaultRTMat(*job.Src, *job.Dst)
		if err != nil {
			return nil, err
		}
		ext := job.Extrinsic
		return geometry.BuildExtrinsic(
			r3.Vector{X: ext.RotationDeg.X, Y: ext.RotationDeg.Y, Z: ext.RotationDeg.Z},
			r3.Vector{X: ext.Translation.X, Y: ext.Translation.Y, Z: ext.Translation.Z},
			base,
		)
	default:
		return nil, nil
	}
}

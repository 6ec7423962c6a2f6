package models

import "github.com/philipparndt/box3dmode/internal/boxmode"

// JobFile is the top-level YAML document describing conversion jobs
type JobFile struct {
	Output string `yaml:"output,omitempty"`
	Jobs   []Job  `yaml:"jobs"`
}

// Job converts one set of boxes from Src to Dst.
// Src and Dst are nil when the key is missing; the zero Mode is LiDAR.
type Job struct {
	Name       string        `yaml:"name"`
	Src        *boxmode.Mode `yaml:"src"`
	Dst        *boxmode.Mode `yaml:"dst"`
	WithYaw    *bool         `yaml:"with_yaw,omitempty"`
	CorrectYaw bool          `yaml:"correct_yaw,omitempty"`
	RTMat      [][]float64   `yaml:"rt_mat,omitempty"`
	Extrinsic  *Extrinsic    `yaml:"extrinsic,omitempty"`
	BoxesFile  string        `yaml:"boxes_file,omitempty"`
	Boxes      [][]float64   `yaml:"boxes,flow"`
}

// HasYaw returns the job's yaw flag, defaulting to true when unset
func (j *Job) HasYaw() bool {
	if j.WithYaw == nil {
		return true
	}
	return *j.WithYaw
}

// Extrinsic describes a sensor mounting offset on top of the canonical axes
type Extrinsic struct {
	RotationDeg Vec3 `yaml:"rotation_deg"`
	Translation Vec3 `yaml:"translation"`
}

// Vec3 is a plain x/y/z triple
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ResultFile is the YAML document written after conversion
type ResultFile struct {
	Results []Result `yaml:"results"`
}

// Result holds the converted boxes of one job
type Result struct {
	Name    string       `yaml:"name"`
	Mode    boxmode.Mode `yaml:"mode"`
	WithYaw bool         `yaml:"with_yaw"`
	Boxes   [][]float64  `yaml:"boxes,flow"`
}

// ConversionRequest is a validated job ready for the converter
type ConversionRequest struct {
	Name    string
	Boxes   *boxmode.Boxes
	Dst     boxmode.Mode
	Options []boxmode.Option
}

// Package boxmode converts oriented 3D boxes between the LiDAR, camera and
// depth coordinate systems.
//
// LiDAR: x front, y left, z up; yaw about z, box reference at bottom center (0.5, 0.5, 0).
// Camera: x right, y down, z front; yaw about y, box reference at bottom center (0.5, 1.0, 0.5).
// Depth: x right, y front, z up; yaw about z, box reference at bottom center (0.5, 0.5, 0).
package boxmode

import (
	"fmt"
	"strings"
)

// Mode identifies the coordinate system a box is expressed in
type Mode int

const (
	LIDAR Mode = iota
	CAM
	DEPTH
)

// Modes returns all supported coordinate systems in declaration order
func Modes() []Mode {
	return []Mode{LIDAR, CAM, DEPTH}
}

// Valid reports whether m is one of the three known coordinate systems
func (m Mode) Valid() bool {
	return m >= LIDAR && m <= DEPTH
}

func (m Mode) String() string {
	switch m {
	case LIDAR:
		return "LiDAR"
	case CAM:
		return "Camera"
	case DEPTH:
		return "Depth"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// YawAxis returns the index of the axis the yaw angle rotates about
func (m Mode) YawAxis() int {
	if m == CAM {
		return 1
	}
	return 2
}

// Origin returns the relative position of the box reference point inside the box,
// expressed along the box's own size axes.
func (m Mode) Origin() [3]float64 {
	if m == CAM {
		return [3]float64{0.5, 1.0, 0.5}
	}
	return [3]float64{0.5, 0.5, 0}
}

// ParseMode parses a coordinate system name. Accepted spellings are the
// dataset-style names (LiDAR, Lidar, Camera, Depth) in any case, plus "cam".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lidar":
		return LIDAR, nil
	case "cam", "camera":
		return CAM, nil
	case "depth":
		return DEPTH, nil
	default:
		return 0, fmt.Errorf("unknown coordinate system %q (expected lidar, camera or depth)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

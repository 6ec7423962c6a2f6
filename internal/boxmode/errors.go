package boxmode

import (
	"errors"

	"github.com/philipparndt/box3dmode/internal/geometry"
)

var (
	// ErrMalformedBox is returned when a box has too few fields for its yaw setting
	ErrMalformedBox = errors.New("malformed box")

	// ErrUnsupportedConversion is returned for a (src, dst) pair with no conversion rule
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrInvalidRTMat is returned when a caller-supplied matrix is not 3x3, 3x4 or 4x4
	ErrInvalidRTMat = geometry.ErrInvalidMatrix
)

package boxmode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/philipparndt/box3dmode/internal/geometry"
)

// pair is an ordered (src, dst) conversion key
type pair struct {
	src, dst Mode
}

// rule describes how one ordered pair converts boxes
type rule struct {
	// rotation is the default 3x3 matrix applied to box centers, row-major
	rotation [9]float64
	// sizeOrder[i] is the source size column (0=dx, 1=dy, 2=dz) written to output size position i
	sizeOrder [3]int
	// fixYaw is the closed-form yaw update, valid only for the default rotation
	fixYaw func(yaw float64) float64
}

var rules = map[pair]rule{
	{LIDAR, CAM}: {
		rotation: [9]float64{
			0, -1, 0,
			0, 0, -1,
			1, 0, 0,
		},
		sizeOrder: [3]int{0, 2, 1},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(-yaw - math.Pi/2) },
	},
	{CAM, LIDAR}: {
		rotation: [9]float64{
			0, 0, 1,
			-1, 0, 0,
			0, -1, 0,
		},
		sizeOrder: [3]int{0, 2, 1},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(-yaw - math.Pi/2) },
	},
	{DEPTH, CAM}: {
		rotation: [9]float64{
			1, 0, 0,
			0, 0, -1,
			0, 1, 0,
		},
		sizeOrder: [3]int{0, 2, 1},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(-yaw) },
	},
	{CAM, DEPTH}: {
		rotation: [9]float64{
			1, 0, 0,
			0, 0, 1,
			0, -1, 0,
		},
		sizeOrder: [3]int{0, 2, 1},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(-yaw) },
	},
	{LIDAR, DEPTH}: {
		rotation: [9]float64{
			0, -1, 0,
			1, 0, 0,
			0, 0, 1,
		},
		sizeOrder: [3]int{0, 1, 2},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(yaw + math.Pi/2) },
	},
	{DEPTH, LIDAR}: {
		rotation: [9]float64{
			0, 1, 0,
			-1, 0, 0,
			0, 0, 1,
		},
		sizeOrder: [3]int{0, 1, 2},
		fixYaw:    func(yaw float64) float64 { return geometry.WrapAngle(yaw - math.Pi/2) },
	},
}

// lookupRule returns the conversion rule for src -> dst
func lookupRule(src, dst Mode) (rule, error) {
	r, ok := rules[pair{src, dst}]
	if !ok {
		return rule{}, fmt.Errorf("%w: from %s to %s", ErrUnsupportedConversion, src, dst)
	}
	return r, nil
}

// DefaultRTMat returns a fresh copy of the canonical 3x3 rotation for src -> dst
func DefaultRTMat(src, dst Mode) (*mat.Dense, error) {
	r, err := lookupRule(src, dst)
	if err != nil {
		return nil, err
	}
	data := r.rotation
	return mat.NewDense(3, 3, data[:]), nil
}

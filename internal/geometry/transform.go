package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidMatrix is returned when a rotation(+translation) matrix is not 3x3, 3x4 or 4x4
var ErrInvalidMatrix = errors.New("rotation matrix must be 3x3, 3x4 or 4x4")

// ValidateRT checks that rt is a 3x3 rotation, a 3x4 rotation+translation matrix
// or a 4x4 homogeneous transform. The last row of a 4x4 matrix is never read.
func ValidateRT(rt mat.Matrix) error {
	if rt == nil {
		return fmt.Errorf("%w: got nil", ErrInvalidMatrix)
	}
	r, c := rt.Dims()
	switch {
	case r == 3 && (c == 3 || c == 4):
	case r == 4 && c == 4:
	default:
		return fmt.Errorf("%w: got %dx%d", ErrInvalidMatrix, r, c)
	}
	return nil
}

// affineRows returns the first three rows of a 4x4 homogeneous transform, or rt itself
func affineRows(rt mat.Matrix) mat.Matrix {
	if r, _ := rt.Dims(); r == 4 {
		return mat.DenseCopyOf(rt).Slice(0, 3, 0, 4)
	}
	return rt
}

// BuildRotation creates a 3x3 rotation matrix from Euler angles in degrees.
// Rotations are applied in the order X, then Y, then Z (R = Rz * Ry * Rx).
func BuildRotation(rotX, rotY, rotZ float64) *mat.Dense {
	// Convert degrees to radians
	rx := rotX * math.Pi / 180.0
	ry := rotY * math.Pi / 180.0
	rz := rotZ * math.Pi / 180.0

	cosX, sinX := math.Cos(rx), math.Sin(rx)
	cosY, sinY := math.Cos(ry), math.Sin(ry)
	cosZ, sinZ := math.Cos(rz), math.Sin(rz)

	return mat.NewDense(3, 3, []float64{
		cosZ * cosY, cosZ*sinY*sinX - sinZ*cosX, cosZ*sinY*cosX + sinZ*sinX,
		sinZ * cosY, sinZ*sinY*sinX + cosZ*cosX, sinZ*sinY*cosX - cosZ*sinX,
		-sinY, cosY * sinX, cosY * cosX,
	})
}

// BuildExtrinsic creates a 3x4 rotation+translation matrix [R*base | t].
// R comes from BuildRotation(rotDeg.X, rotDeg.Y, rotDeg.Z); base may be nil for identity.
func BuildExtrinsic(rotDeg, translation r3.Vector, base mat.Matrix) (*mat.Dense, error) {
	rot := BuildRotation(rotDeg.X, rotDeg.Y, rotDeg.Z)
	if base != nil {
		if r, c := base.Dims(); r != 3 || c != 3 {
			return nil, fmt.Errorf("%w: base must be 3x3, got %dx%d", ErrInvalidMatrix, r, c)
		}
		var composed mat.Dense
		composed.Mul(rot, base)
		rot = &composed
	}

	rt := mat.NewDense(3, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rt.Set(i, j, rot.At(i, j))
		}
	}
	rt.Set(0, 3, translation.X)
	rt.Set(1, 3, translation.Y)
	rt.Set(2, 3, translation.Z)
	return rt, nil
}

// ApplyRT transforms N points given as an Nx3 matrix.
// A 3x4 or 4x4 matrix is applied to the homogeneous points [x y z 1] and only x, y, z are kept;
// a 3x3 matrix is a pure rotation.
func ApplyRT(points mat.Matrix, rt mat.Matrix) (*mat.Dense, error) {
	if err := ValidateRT(rt); err != nil {
		return nil, err
	}
	rt = affineRows(rt)
	n, c := points.Dims()
	if c != 3 {
		return nil, fmt.Errorf("points must be Nx3, got %dx%d", n, c)
	}

	_, rtCols := rt.Dims()
	in := points
	if rtCols == 4 {
		ext := mat.NewDense(n, 4, nil)
		for i := 0; i < n; i++ {
			ext.Set(i, 0, points.At(i, 0))
			ext.Set(i, 1, points.At(i, 1))
			ext.Set(i, 2, points.At(i, 2))
			ext.Set(i, 3, 1)
		}
		in = ext
	}

	var out mat.Dense
	out.Mul(in, rt.T())
	return &out, nil
}

// RotateVector applies the 3x3 rotation part of rt to v; any translation column is ignored.
func RotateVector(rt mat.Matrix, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rt.At(0, 0)*v.X + rt.At(0, 1)*v.Y + rt.At(0, 2)*v.Z,
		Y: rt.At(1, 0)*v.X + rt.At(1, 1)*v.Y + rt.At(1, 2)*v.Z,
		Z: rt.At(2, 0)*v.X + rt.At(2, 1)*v.Y + rt.At(2, 2)*v.Z,
	}
}

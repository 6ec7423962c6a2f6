package boxmode

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/philipparndt/box3dmode/internal/geometry"
)

// Convertible is one of the box containers Convert accepts: Single, Array, Matrix or *Boxes.
// Convert returns the same container kind it was given.
type Convertible interface {
	isConvertible()
}

// Single is one flat box [x, y, z, dx, dy, dz, yaw, extra...]
type Single []float64

// Array is N boxes as rows of equal width
type Array [][]float64

// Matrix is N boxes as an N x k gonum matrix
type Matrix struct {
	*mat.Dense
}

func (Single) isConvertible() {}
func (Array) isConvertible() {}
func (Matrix) isConvertible() {}
func (*Boxes) isConvertible() {}

type options struct {
	rtMat      mat.Matrix
	withYaw    bool
	correctYaw bool
}

// Option configures a conversion
type Option func(*options)

// WithRTMat overrides the default rotation for the pair with a 3x3 rotation,
// a 3x4 rotation+translation matrix or a 4x4 homogeneous transform.
func WithRTMat(m mat.Matrix) Option {
	return func(o *options) {
		o.rtMat = m
	}
}

// WithYaw sets whether column 6 is a yaw angle. Defaults to true.
// Ignored for *Boxes, which carry their own flag.
func WithYaw(withYaw bool) Option {
	return func(o *options) {
		o.withYaw = withYaw
	}
}

// CorrectYaw recomputes yaw by rotating its direction vector with the applied
// matrix instead of using the closed-form offset for the pair. Defaults to false.
func CorrectYaw(correct bool) Option {
	return func(o *options) {
		o.correctYaw = correct
	}
}

func newOptions(opts []Option) options {
	o := options{withYaw: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// buffer is a private row-major copy of the boxes being converted
type buffer struct {
	data []float64
	rows int
	cols int
}

func (b buffer) row(i int) []float64 {
	return b.data[i*b.cols : (i+1)*b.cols]
}

// Convert converts boxes from src to dst and returns them in the same container kind.
// When src == dst the input is returned unchanged, without a copy.
// The input is never modified.
func Convert(box Convertible, src, dst Mode, opts ...Option) (Convertible, error) {
	if src == dst {
		return box, nil
	}

	o := newOptions(opts)

	var buf buffer
	switch b := box.(type) {
	case Single:
		if len(b) < 7 {
			return nil, fmt.Errorf("%w: a single box needs at least 7 fields, got %d", ErrMalformedBox, len(b))
		}
		data := make([]float64, len(b))
		copy(data, b)
		buf = buffer{data: data, rows: 1, cols: len(b)}
	case Array:
		cols, err := rowWidth(b, o.withYaw)
		if err != nil {
			return nil, err
		}
		buf = buffer{data: flatten(b, cols), rows: len(b), cols: cols}
	case Matrix:
		if b.Dense == nil {
			return nil, fmt.Errorf("%w: nil matrix", ErrMalformedBox)
		}
		data, rows, cols, err := matrixData(b.Dense, o.withYaw)
		if err != nil {
			return nil, err
		}
		buf = buffer{data: data, rows: rows, cols: cols}
	case *Boxes:
		if b == nil {
			return nil, fmt.Errorf("%w: nil box set", ErrMalformedBox)
		}
		o.withYaw = b.withYaw
		data := make([]float64, len(b.data))
		copy(data, b.data)
		buf = buffer{data: data, rows: b.Len(), cols: b.dim}
	default:
		return nil, fmt.Errorf("%w: unsupported box container %T", ErrMalformedBox, box)
	}

	out, err := convertBuffer(buf, src, dst, o)
	if err != nil {
		return nil, err
	}

	switch box.(type) {
	case Single:
		return Single(out.data), nil
	case Array:
		rows := make(Array, out.rows)
		for i := range rows {
			rows[i] = out.row(i)
		}
		return rows, nil
	case Matrix:
		return Matrix{mat.NewDense(out.rows, out.cols, out.data)}, nil
	default:
		return &Boxes{mode: dst, withYaw: o.withYaw, dim: out.cols, data: out.data}, nil
	}
}

// convertBuffer applies the (src, dst) rule to every row of buf
func convertBuffer(buf buffer, src, dst Mode, o options) (buffer, error) {
	r, err := lookupRule(src, dst)
	if err != nil {
		return buffer{}, err
	}

	rt := o.rtMat
	if rt == nil {
		rotation := r.rotation
		rt = mat.NewDense(3, 3, rotation[:])
	}
	if err := geometry.ValidateRT(rt); err != nil {
		return buffer{}, err
	}

	out := buffer{data: make([]float64, len(buf.data)), rows: buf.rows, cols: buf.cols}
	if buf.rows == 0 {
		return out, nil
	}

	xyz := mat.NewDense(buf.rows, 3, nil)
	for i := 0; i < buf.rows; i++ {
		row := buf.row(i)
		xyz.SetRow(i, row[:3])
	}
	moved, err := geometry.ApplyRT(xyz, rt)
	if err != nil {
		return buffer{}, err
	}

	for i := 0; i < buf.rows; i++ {
		in := buf.row(i)
		res := out.row(i)

		res[0], res[1], res[2] = moved.At(i, 0), moved.At(i, 1), moved.At(i, 2)
		for k, from := range r.sizeOrder {
			res[3+k] = in[3+from]
		}

		next := 6
		if o.withYaw {
			if o.correctYaw {
				res[6] = rotateYaw(in[6], src, dst, rt)
			} else {
				res[6] = r.fixYaw(in[6])
			}
			next = 7
		}
		copy(res[next:], in[next:])
	}
	return out, nil
}

// rotateYaw rotates the yaw direction of src by rt and reads it back in dst's convention
func rotateYaw(yaw float64, src, dst Mode, rt mat.Matrix) float64 {
	var dir r3.Vector
	if src == CAM {
		dir = r3.Vector{X: math.Cos(-yaw), Z: math.Sin(-yaw)}
	} else {
		dir = r3.Vector{X: math.Cos(yaw), Y: math.Sin(yaw)}
	}

	rotated := geometry.RotateVector(rt, dir)

	var out float64
	if dst == CAM {
		out = math.Atan2(-rotated.Z, rotated.X)
	} else {
		out = math.Atan2(rotated.Y, rotated.X)
	}
	return geometry.WrapAngle(out)
}

// ConvertSingle converts one flat box
func ConvertSingle(box []float64, src, dst Mode, opts ...Option) ([]float64, error) {
	out, err := Convert(Single(box), src, dst, opts...)
	if err != nil {
		return nil, err
	}
	return out.(Single), nil
}

// ConvertArray converts N boxes given as rows
func ConvertArray(rows [][]float64, src, dst Mode, opts ...Option) ([][]float64, error) {
	out, err := Convert(Array(rows), src, dst, opts...)
	if err != nil {
		return nil, err
	}
	return out.(Array), nil
}

// ConvertMatrix converts N boxes given as an N x k matrix
func ConvertMatrix(m *mat.Dense, src, dst Mode, opts ...Option) (*mat.Dense, error) {
	out, err := Convert(Matrix{m}, src, dst, opts...)
	if err != nil {
		return nil, err
	}
	return out.(Matrix).Dense, nil
}

// ConvertBoxes converts a box set; the result is tagged with dst
func ConvertBoxes(b *Boxes, src, dst Mode, opts ...Option) (*Boxes, error) {
	out, err := Convert(b, src, dst, opts...)
	if err != nil {
		return nil, err
	}
	return out.(*Boxes), nil
}

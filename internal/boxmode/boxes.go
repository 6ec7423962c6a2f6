package boxmode

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/philipparndt/box3dmode/internal/geometry"
)

// Boxes is an immutable set of N boxes that share one coordinate system,
// one yaw flag and one field count. Rows are stored row-major.
type Boxes struct {
	mode    Mode
	withYaw bool
	dim     int
	data    []float64
}

// minWidth returns the smallest valid field count for a box
func minWidth(withYaw bool) int {
	if withYaw {
		return 7
	}
	return 6
}

// NewBoxes creates a box set from rows. The rows are copied.
// An empty set gets the minimum field count for withYaw.
func NewBoxes(mode Mode, rows [][]float64, withYaw bool) (*Boxes, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("cannot create boxes in %s", mode)
	}
	dim, err := rowWidth(rows, withYaw)
	if err != nil {
		return nil, err
	}
	return &Boxes{
		mode:    mode,
		withYaw: withYaw,
		dim:     dim,
		data:    flatten(rows, dim),
	}, nil
}

// NewBoxesFromMatrix creates a box set from an N x k matrix. The values are copied.
func NewBoxesFromMatrix(mode Mode, m mat.Matrix, withYaw bool) (*Boxes, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("cannot create boxes in %s", mode)
	}
	data, _, cols, err := matrixData(m, withYaw)
	if err != nil {
		return nil, err
	}
	return &Boxes{mode: mode, withYaw: withYaw, dim: cols, data: data}, nil
}

// Mode returns the coordinate system of the set
func (b *Boxes) Mode() Mode {
	return b.mode
}

// WithYaw reports whether column 6 holds a yaw angle
func (b *Boxes) WithYaw() bool {
	return b.withYaw
}

// Len returns the number of boxes
func (b *Boxes) Len() int {
	if b.dim == 0 {
		return 0
	}
	return len(b.data) / b.dim
}

// BoxDim returns the number of fields per box
func (b *Boxes) BoxDim() int {
	return b.dim
}

// Row returns a copy of box i.
// Row and the other per-box accessors panic when i is outside [0, Len()).
func (b *Boxes) Row(i int) []float64 {
	row := make([]float64, b.dim)
	copy(row, b.row(i))
	return row
}

// row returns box i without copying
func (b *Boxes) row(i int) []float64 {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("boxmode: box index %d out of range [0, %d)", i, b.Len()))
	}
	return b.data[i*b.dim : (i+1)*b.dim]
}

// Rows returns a copy of all boxes
func (b *Boxes) Rows() [][]float64 {
	rows := make([][]float64, b.Len())
	for i := range rows {
		rows[i] = b.Row(i)
	}
	return rows
}

// Tensor returns a copy of the boxes as an N x k matrix, or nil for an empty set
func (b *Boxes) Tensor() *mat.Dense {
	if b.Len() == 0 {
		return nil
	}
	data := make([]float64, len(b.data))
	copy(data, b.data)
	return mat.NewDense(b.Len(), b.dim, data)
}

// Center returns the reference point of box i
func (b *Boxes) Center(i int) r3.Vector {
	row := b.row(i)
	return r3.Vector{X: row[0], Y: row[1], Z: row[2]}
}

// Size returns the three extents of box i along its local axes
func (b *Boxes) Size(i int) r3.Vector {
	row := b.row(i)
	return r3.Vector{X: row[3], Y: row[4], Z: row[5]}
}

// Yaw returns the yaw of box i, or 0 when the set carries no yaw
func (b *Boxes) Yaw(i int) float64 {
	row := b.row(i)
	if !b.withYaw {
		return 0
	}
	return row[6]
}

// axes returns the unit vectors of box i's local size axes in the set's coordinate system
func (b *Boxes) axes(i int) [3]r3.Vector {
	yaw := b.Yaw(i)
	c, s := math.Cos(yaw), math.Sin(yaw)
	if b.mode == CAM {
		return [3]r3.Vector{
			{X: c, Z: -s},
			{Y: 1},
			{X: s, Z: c},
		}
	}
	return [3]r3.Vector{
		{X: c, Y: s},
		{X: -s, Y: c},
		{Z: 1},
	}
}

// GravityCenter returns the geometric center of box i
func (b *Boxes) GravityCenter(i int) r3.Vector {
	center := b.Center(i)
	size := b.Size(i)
	origin := b.mode.Origin()
	axes := b.axes(i)
	extents := [3]float64{size.X, size.Y, size.Z}
	for k := 0; k < 3; k++ {
		center = center.Add(axes[k].Mul((0.5 - origin[k]) * extents[k]))
	}
	return center
}

// Corners returns the eight corners of box i. Bit k of the corner index selects
// the positive (1) or negative (0) half extent along local axis k.
func (b *Boxes) Corners(i int) [8]r3.Vector {
	center := b.GravityCenter(i)
	size := b.Size(i)
	axes := b.axes(i)
	half := [3]r3.Vector{
		axes[0].Mul(size.X / 2),
		axes[1].Mul(size.Y / 2),
		axes[2].Mul(size.Z / 2),
	}

	var corners [8]r3.Vector
	for j := range corners {
		p := center
		for k := 0; k < 3; k++ {
			if j&(1<<k) != 0 {
				p = p.Add(half[k])
			} else {
				p = p.Sub(half[k])
			}
		}
		corners[j] = p
	}
	return corners
}

// Bounds returns the axis-aligned bounds of all box corners
func (b *Boxes) Bounds() (*geometry.BoundingBox, error) {
	n := b.Len()
	if n == 0 {
		return nil, fmt.Errorf("box set is empty")
	}
	points := make([]r3.Vector, 0, n*8)
	for i := 0; i < n; i++ {
		corners := b.Corners(i)
		points = append(points, corners[:]...)
	}
	return geometry.BoundsOf(points)
}

// ConvertTo converts the set into dst. Converting into its own mode returns b itself.
func (b *Boxes) ConvertTo(dst Mode, opts ...Option) (*Boxes, error) {
	return ConvertBoxes(b, b.mode, dst, opts...)
}

func (b *Boxes) String() string {
	return fmt.Sprintf("%sBoxes(n=%d, dim=%d, with_yaw=%t)", b.mode, b.Len(), b.dim, b.withYaw)
}

// rowWidth validates that all rows share one width large enough for withYaw
func rowWidth(rows [][]float64, withYaw bool) (int, error) {
	if len(rows) == 0 {
		return minWidth(withYaw), nil
	}
	dim := len(rows[0])
	for i, row := range rows {
		if len(row) != dim {
			return 0, fmt.Errorf("%w: row %d has %d fields, row 0 has %d", ErrMalformedBox, i, len(row), dim)
		}
	}
	if dim < minWidth(withYaw) {
		return 0, fmt.Errorf("%w: boxes need at least %d fields (with_yaw=%t), got %d",
			ErrMalformedBox, minWidth(withYaw), withYaw, dim)
	}
	return dim, nil
}

// flatten copies rows into one row-major slice
func flatten(rows [][]float64, dim int) []float64 {
	data := make([]float64, 0, len(rows)*dim)
	for _, row := range rows {
		data = append(data, row...)
	}
	return data
}

// matrixData copies a matrix into a row-major slice after validating its width
func matrixData(m mat.Matrix, withYaw bool) ([]float64, int, int, error) {
	if m == nil {
		return nil, 0, 0, fmt.Errorf("%w: nil matrix", ErrMalformedBox)
	}
	r, c := m.Dims()
	if c < minWidth(withYaw) {
		return nil, 0, 0, fmt.Errorf("%w: boxes need at least %d fields (with_yaw=%t), got %d",
			ErrMalformedBox, minWidth(withYaw), withYaw, c)
	}
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return data, r, c, nil
}

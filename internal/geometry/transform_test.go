package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildRotation_NoRotation(t *testing.T) {
	rot := BuildRotation(0, 0, 0)
	want := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	if !mat.EqualApprox(rot, want, 1e-12) {
		t.Errorf("BuildRotation(0, 0, 0) = %v, want identity", mat.Formatted(rot))
	}
}

func TestBuildRotation_90DegreeZ(t *testing.T) {
	rot := BuildRotation(0, 0, 90)

	// X axis maps onto Y axis
	got := RotateVector(rot, r3.Vector{X: 1})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("Rz(90) * X = %v, want (0, 1, 0)", got)
	}
}

func TestBuildRotation_Orthonormal(t *testing.T) {
	rot := BuildRotation(30, 45, 60)

	var product mat.Dense
	product.Mul(rot, rot.T())
	identity := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	assert.True(t, mat.EqualApprox(&product, identity, 1e-9), "R * R^T should be identity")
	assert.InDelta(t, 1.0, mat.Det(rot), 1e-9)
}

func TestBuildExtrinsic(t *testing.T) {
	base := mat.NewDense(3, 3, []float64{0, -1, 0, 0, 0, -1, 1, 0, 0})
	rt, err := BuildExtrinsic(r3.Vector{}, r3.Vector{X: 10, Y: 20, Z: 30}, base)
	require.NoError(t, err)

	r, c := rt.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 4, c)

	// Zero rotation keeps the base matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, base.At(i, j), rt.At(i, j), 1e-12)
		}
	}
	assert.Equal(t, 10.0, rt.At(0, 3))
	assert.Equal(t, 20.0, rt.At(1, 3))
	assert.Equal(t, 30.0, rt.At(2, 3))
}

func TestBuildExtrinsic_BadBase(t *testing.T) {
	_, err := BuildExtrinsic(r3.Vector{}, r3.Vector{}, mat.NewDense(2, 2, nil))
	if !errors.Is(err, ErrInvalidMatrix) {
		t.Errorf("BuildExtrinsic with 2x2 base: err = %v, want ErrInvalidMatrix", err)
	}
}

func TestApplyRT(t *testing.T) {
	points := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		-1, 0, 4,
	})

	t.Run("rotation only", func(t *testing.T) {
		rot := mat.NewDense(3, 3, []float64{0, -1, 0, 0, 0, -1, 1, 0, 0})
		out, err := ApplyRT(points, rot)
		require.NoError(t, err)
		want := mat.NewDense(2, 3, []float64{
			-2, -3, 1,
			0, -4, -1,
		})
		assert.True(t, mat.EqualApprox(out, want, 1e-12), "got %v", mat.Formatted(out))
	})

	t.Run("rotation and translation", func(t *testing.T) {
		rt := mat.NewDense(3, 4, []float64{
			1, 0, 0, 10,
			0, 1, 0, 20,
			0, 0, 1, 30,
		})
		out, err := ApplyRT(points, rt)
		require.NoError(t, err)
		want := mat.NewDense(2, 3, []float64{
			11, 22, 33,
			9, 20, 34,
		})
		assert.True(t, mat.EqualApprox(out, want, 1e-12), "got %v", mat.Formatted(out))
	})

	t.Run("homogeneous 4x4 drops the last row", func(t *testing.T) {
		rt := mat.NewDense(4, 4, []float64{
			1, 0, 0, 10,
			0, 1, 0, 20,
			0, 0, 1, 30,
			7, 7, 7, 7,
		})
		out, err := ApplyRT(points, rt)
		require.NoError(t, err)
		r, c := out.Dims()
		assert.Equal(t, []int{2, 3}, []int{r, c})
		want := mat.NewDense(2, 3, []float64{
			11, 22, 33,
			9, 20, 34,
		})
		assert.True(t, mat.EqualApprox(out, want, 1e-12), "got %v", mat.Formatted(out))
	})

	t.Run("invalid shape", func(t *testing.T) {
		_, err := ApplyRT(points, mat.NewDense(4, 3, nil))
		assert.ErrorIs(t, err, ErrInvalidMatrix)
	})
}

func TestValidateRT(t *testing.T) {
	assert.NoError(t, ValidateRT(mat.NewDense(3, 3, nil)))
	assert.NoError(t, ValidateRT(mat.NewDense(3, 4, nil)))
	assert.NoError(t, ValidateRT(mat.NewDense(4, 4, nil)))
	assert.ErrorIs(t, ValidateRT(mat.NewDense(4, 3, nil)), ErrInvalidMatrix)
	assert.ErrorIs(t, ValidateRT(mat.NewDense(3, 5, nil)), ErrInvalidMatrix)
	assert.ErrorIs(t, ValidateRT(mat.NewDense(2, 3, nil)), ErrInvalidMatrix)
	assert.ErrorIs(t, ValidateRT(nil), ErrInvalidMatrix)
}

func TestRotateVector_IgnoresTranslation(t *testing.T) {
	rt := mat.NewDense(3, 4, []float64{
		1, 0, 0, 5,
		0, 1, 0, 5,
		0, 0, 1, 5,
	})
	got := RotateVector(rt, r3.Vector{X: 1, Y: 2, Z: 3})
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, got)
}

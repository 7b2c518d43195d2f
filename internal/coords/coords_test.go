package coords

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-12

var samples = [][3]float64{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 2, 3},
	{-4.5, 0.25, 17},
	{1e6, -1e-6, 3.14159},
}

func TestToBlenderMapping(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, ToBlender([3]float64{1, 0, 0}))
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, ToBlender([3]float64{0, 1, 0}))
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, ToBlender([3]float64{0, 0, 1}))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range samples {
		assert.Equal(t, v, FromBlender(ToBlender(v)))
	}
}

func TestProperRotation(t *testing.T) {
	// det +1: handedness, winding and normals are preserved.
	assert.InDelta(t, 1.0, Mat3().Det(), tol)

	// Orthonormal: dot products are preserved for all pairs.
	for _, a := range samples {
		for _, b := range samples {
			va := mgl64.Vec3{a[0], a[1], a[2]}
			vb := mgl64.Vec3{b[0], b[1], b[2]}
			assert.InDelta(t, va.Dot(vb), ToBlender(a).Dot(ToBlender(b)), 1e-6)
		}
	}
}

func TestMat3MatchesToBlender(t *testing.T) {
	m := Mat3()
	for _, v := range samples {
		got := m.Mul3x1(mgl64.Vec3{v[0], v[1], v[2]})
		want := ToBlender(v)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, want[i], got[i], tol)
		}
	}
}

func TestScaleToBlender(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{2, 4, 3}, ScaleToBlender([3]float64{2, 3, 4}))
}

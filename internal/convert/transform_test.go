package convert

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skewer-project/skewer2blend/internal/coords"
	"github.com/skewer-project/skewer2blend/internal/objfile"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

const tfTol = 1e-9

func TestEulerToBlenderSingleAxis(t *testing.T) {
	half := math.Pi / 2
	assert.Equal(t, mgl64.Vec3{half, 0, 0}, EulerToBlender([3]float64{90, 0, 0}))
	assert.Equal(t, mgl64.Vec3{0, 0, half}, EulerToBlender([3]float64{0, 90, 0}))
	assert.Equal(t, mgl64.Vec3{0, -half, 0}, EulerToBlender([3]float64{0, 0, 90}))
}

// The converted euler triple must reproduce the source rotation as seen
// through the axis conversion: R_target == C · R_source · C⁻¹, checked
// numerically at sample vectors, including compound multi-axis angles.
func TestRotationMappingMatchesConjugation(t *testing.T) {
	rotations := [][3]float64{
		{90, 0, 0},
		{0, 90, 0},
		{0, 0, 90},
		{30, 45, 60},
		{-20, 50, 110},
		{13.5, -77, 200},
	}
	probes := []mgl64.Vec3{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}, {-0.5, 4, -2.25},
	}
	c := coords.Mat3()
	cInv := c.Transpose() // proper rotation: inverse is transpose

	for _, rot := range rotations {
		conjugated := c.Mul3(SourceRotationMatrix(rot)).Mul3(cInv)
		direct := RotationMatrix(EulerToBlender(rot))
		for _, p := range probes {
			want := conjugated.Mul3x1(p)
			got := direct.Mul3x1(p)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, want[i], got[i], tfTol, "rot=%v probe=%v", rot, p)
			}
		}
	}
}

// Rotating the source basis vectors and axis-converting the results must
// match applying the converted rotation to the converted basis vectors.
func TestRotationMappingOnRotatedAxes(t *testing.T) {
	for _, rot := range [][3]float64{{90, 0, 0}, {0, 90, 0}, {0, 0, 90}} {
		rs := SourceRotationMatrix(rot)
		rt := RotationMatrix(EulerToBlender(rot))
		for _, axis := range [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
			src := rs.Mul3x1(mgl64.Vec3{axis[0], axis[1], axis[2]})
			want := coords.ToBlender([3]float64{src[0], src[1], src[2]})
			got := rt.Mul3x1(coords.ToBlender(axis))
			for i := 0; i < 3; i++ {
				assert.InDelta(t, want[i], got[i], tfTol, "rot=%v axis=%v", rot, axis)
			}
		}
	}
}

func TestFitBoundsSpan(t *testing.T) {
	// Combined box spans [-3,3] on the largest (source X) axis.
	groups := []objfile.Group{
		{Name: "a", Min: [3]float64{-3, -1, -0.5}, Max: [3]float64{0, 1, 0.5}, Verts: 8},
		{Name: "b", Min: [3]float64{0, -1, -0.5}, Max: [3]float64{3, 1, 0.5}, Verts: 8},
	}
	norm, ok := FitBounds(groups)
	require.True(t, ok)
	assert.InDelta(t, 2.0/6.0, norm.Scale, tfTol)

	// After normalization the largest extent spans exactly 2 with the
	// centroid at the origin.
	inf := math.Inf(1)
	min := mgl64.Vec3{inf, inf, inf}
	max := mgl64.Vec3{-inf, -inf, -inf}
	for _, g := range groups {
		for _, corner := range g.Corners() {
			p := coords.ToBlender(corner).Mul(norm.Scale).Add(norm.Offset)
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], p[i])
				max[i] = math.Max(max[i], p[i])
			}
		}
	}
	extent := max.Sub(min)
	assert.InDelta(t, 2.0, math.Max(extent[0], math.Max(extent[1], extent[2])), tfTol)
	centroid := min.Add(max).Mul(0.5)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, centroid[i], tfTol)
	}
}

func TestFitBoundsOffCenter(t *testing.T) {
	groups := []objfile.Group{
		{Name: "a", Min: [3]float64{10, 20, 30}, Max: [3]float64{14, 21, 31}, Verts: 8},
	}
	norm, ok := FitBounds(groups)
	require.True(t, ok)
	assert.InDelta(t, 0.5, norm.Scale, tfTol)

	// The converted centroid lands at the origin.
	centroid := coords.ToBlender([3]float64{12, 20.5, 30.5}).Mul(norm.Scale).Add(norm.Offset)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, centroid[i], tfTol)
	}
}

func TestFitBoundsDegenerate(t *testing.T) {
	// A single point-sized object: normalization is skipped, no division
	// by zero.
	point := []objfile.Group{
		{Name: "p", Min: [3]float64{1, 1, 1}, Max: [3]float64{1, 1, 1}, Verts: 1},
	}
	_, ok := FitBounds(point)
	assert.False(t, ok)

	_, ok = FitBounds(nil)
	assert.False(t, ok)
}

func TestComposeAssetPlacement(t *testing.T) {
	tf := scenedesc.Transform{
		Scale:     [3]float64{2, 3, 4},
		Rotate:    [3]float64{0, 90, 0},
		Translate: [3]float64{1, 2, 3},
	}
	groups := []objfile.Group{
		{Name: "g", Min: [3]float64{-1, -1, -1}, Max: [3]float64{1, 1, 1}, Verts: 8},
	}
	at, warns := ComposeAsset("Asset_0", tf, true, groups)
	assert.Empty(t, warns)
	require.NotNil(t, at.Normalize)
	assert.InDelta(t, 1.0, at.Normalize.Scale, tfTol)

	assert.Equal(t, mgl64.Vec3{2, 4, 3}, at.Placement.Scale)
	assert.Equal(t, mgl64.Vec3{1, -3, 2}, at.Placement.Location)
	assert.InDelta(t, math.Pi/2, at.Placement.EulerZXY[2], tfTol)
}

func TestComposeAssetDegenerateWarns(t *testing.T) {
	point := []objfile.Group{
		{Name: "p", Min: [3]float64{0, 0, 0}, Max: [3]float64{0, 0, 0}, Verts: 1},
	}
	at, warns := ComposeAsset("Asset_1", scenedesc.IdentityTransform(), true, point)
	assert.Nil(t, at.Normalize)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "auto_fit skipped")

	// The placement still applies even without normalization.
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, at.Placement.Scale)
}

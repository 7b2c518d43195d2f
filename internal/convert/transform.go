package convert

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skewer-project/skewer2blend/internal/coords"
	"github.com/skewer-project/skewer2blend/internal/objfile"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

// ComposeAsset builds the transform instruction for one imported asset:
// optional auto-fit normalization over the imported bounds, then the
// scene-level placement converted to Blender axes and rotation order.
// A degenerate bounding box skips only the normalization, reported in the
// returned warnings.
func ComposeAsset(name string, tf scenedesc.Transform, autoFit bool, groups []objfile.Group) (ApplyTransform, []string) {
	var warnings []string
	out := ApplyTransform{Name: name}

	if autoFit {
		if norm, ok := FitBounds(groups); ok {
			out.Normalize = &norm
		} else {
			warnings = append(warnings, fmt.Sprintf("degenerate bounding box for %s, auto_fit skipped", name))
		}
	}

	out.Placement = Placement{
		Scale:    coords.ScaleToBlender(tf.Scale),
		EulerZXY: EulerToBlender(tf.Rotate),
		Location: coords.ToBlender(tf.Translate),
	}
	return out, warnings
}

// FitBounds computes the normalization that recenters the combined
// bounding-box centroid at the origin and scales uniformly so the largest
// extent spans exactly 2 units. The bounds accumulate over every group's
// bounding corners, axis-converted; imported objects sit at identity world
// transforms at this point. ok is false for empty or zero-extent geometry.
func FitBounds(groups []objfile.Group) (Normalization, bool) {
	if len(groups) == 0 {
		return Normalization{}, false
	}
	inf := math.Inf(1)
	min := mgl64.Vec3{inf, inf, inf}
	max := mgl64.Vec3{-inf, -inf, -inf}
	for _, g := range groups {
		for _, corner := range g.Corners() {
			c := coords.ToBlender(corner)
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], c[i])
				max[i] = math.Max(max[i], c[i])
			}
		}
	}
	extent := max.Sub(min)
	maxDim := math.Max(extent[0], math.Max(extent[1], extent[2]))
	if maxDim <= 0 {
		return Normalization{}, false
	}
	s := 2 / maxDim
	centroid := min.Add(max).Mul(0.5)
	return Normalization{Offset: centroid.Mul(-s), Scale: s}, true
}

// EulerToBlender converts a Skewer rotation triple (degrees, YXZ apply
// order) into Blender's ZXY-order euler in radians. The axis map sends X to
// X, Y to Z and Z to -Y, so by conjugation the triple (rx, ry, rz) becomes
// (rx, -rz, ry). This is exact for compound rotations, not just single-axis
// ones; see RotationMatrix and the tests.
func EulerToBlender(rot [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.DegToRad(rot[0]),
		mgl64.DegToRad(-rot[2]),
		mgl64.DegToRad(rot[1]),
	}
}

// RotationMatrix expands a Blender ZXY-order euler triple (radians) into its
// rotation matrix: Z applied first, then X, then Y.
func RotationMatrix(e mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DY(e[1]).Mul3(mgl64.Rotate3DX(e[0])).Mul3(mgl64.Rotate3DZ(e[2]))
}

// SourceRotationMatrix expands a Skewer rotation triple (degrees, YXZ apply
// order) in the source frame: Y applied first, then X, then Z.
func SourceRotationMatrix(rot [3]float64) mgl64.Mat3 {
	rx := mgl64.DegToRad(rot[0])
	ry := mgl64.DegToRad(rot[1])
	rz := mgl64.DegToRad(rot[2])
	return mgl64.Rotate3DZ(rz).Mul3(mgl64.Rotate3DX(rx)).Mul3(mgl64.Rotate3DY(ry))
}

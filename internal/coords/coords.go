// Package coords converts between Skewer's and Blender's coordinate
// conventions.
//
// Skewer scenes are Y-up with the camera looking toward -Z; Blender is Z-up
// with +Y as world forward. The mapping (x, y, z) → (x, -z, y) is a proper
// rotation (det = +1), so it preserves handedness, face winding and normal
// direction, and applies uniformly to points, directions and normals.
//
// Skewer-convention triples are plain [3]float64 as they come out of the
// scene description; Blender-convention values are mgl64.Vec3. Converting
// between the two representations always goes through this package.
package coords

import "github.com/go-gl/mathgl/mgl64"

// ToBlender maps a Skewer-convention triple to a Blender-convention vector.
func ToBlender(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], -v[2], v[1]}
}

// FromBlender is the inverse of ToBlender: (x, y, z) → (x, z, -y).
func FromBlender(v mgl64.Vec3) [3]float64 {
	return [3]float64{v[0], v[2], -v[1]}
}

// ScaleToBlender maps a Skewer scale triple onto Blender axes. The Y and Z
// components swap with no sign change; scale factors are never negative.
func ScaleToBlender(s [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{s[0], s[2], s[1]}
}

// Mat3 returns the linear map of ToBlender as a 3×3 matrix.
func Mat3() mgl64.Mat3 {
	return mgl64.Mat3FromCols(
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{0, -1, 0},
	)
}

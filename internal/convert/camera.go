package convert

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skewer-project/skewer2blend/internal/coords"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

// Length below which a direction is considered degenerate.
const epsilon = 1e-9

// BuildCamera constructs the camera instruction from a look-at definition.
// All work happens in Blender convention. Blender cameras look down their
// local -Z with +Y up, so the world-matrix basis columns are
// (right, up, -forward) with the eye as translation.
func BuildCamera(def scenedesc.Camera) (CreateCamera, error) {
	eye := coords.ToBlender(def.LookFrom)
	target := coords.ToBlender(def.LookAt)
	vup := coords.ToBlender(def.VUp)

	forward := target.Sub(eye)
	if forward.Len() < epsilon {
		return CreateCamera{}, fmt.Errorf("convert: camera look_from equals look_at: %w", scenedesc.ErrConfig)
	}
	forward = forward.Normalize()

	right := forward.Cross(vup)
	if right.Len() < epsilon {
		return CreateCamera{}, fmt.Errorf("convert: camera vup is parallel to the view direction: %w", scenedesc.ErrConfig)
	}
	right = right.Normalize()
	up := right.Cross(forward)

	world := mgl64.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		forward.Mul(-1).Vec4(0),
		eye.Vec4(1),
	)
	return CreateCamera{World: world, VFOV: mgl64.DegToRad(def.VFOV)}, nil
}

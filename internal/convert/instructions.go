package convert

import "github.com/go-gl/mathgl/mgl64"

// Instruction is one ordered command for the host scene-graph adapter. The
// assembler only computes; a host adapter (internal/blend) performs the
// actual scene mutation. Instructions must be applied in slice order: the
// host's state is order-dependent.
type Instruction interface {
	instruction()
}

// CreateMaterial registers a named material with translated shading
// parameters.
type CreateMaterial struct {
	Name   string
	Params ShadingParams
}

// CreateCamera places the single scene camera. World carries the full
// camera-to-world matrix; VFOV is the full vertical angle in radians with
// vertical sensor fit, independent of aspect ratio.
type CreateCamera struct {
	World mgl64.Mat4
	VFOV  float64
}

// ConfigureRender sets the render engine parameters. Background is always
// black at zero strength so rays that miss all geometry contribute nothing,
// matching the Skewer renderer.
type ConfigureRender struct {
	Samples    int
	MaxBounces int
	Width      int
	Height     int
	OutputPath string

	Background         [3]float64
	BackgroundStrength float64
}

// CreateSphere adds a sphere primitive.
type CreateSphere struct {
	Name     string
	Center   mgl64.Vec3
	Radius   float64
	Material string
}

// CreateQuad adds a single four-vertex face.
type CreateQuad struct {
	Name     string
	Vertices [4]mgl64.Vec3
	Material string
}

// ImportAsset asks the host to import a mesh file. The axis hints tell the
// host's importer that the file data is Y-up with -Z forward, so its own
// conversion matches coords.ToBlender.
type ImportAsset struct {
	Name        string
	Path        string
	UpAxis      string // "Y"
	ForwardAxis string // "-Z"
}

// ApplyTransform places the objects produced by the ImportAsset of the same
// Name. When Normalize is non-nil it must be baked into the objects' local
// data first, so Placement composes on already-normalized geometry.
type ApplyTransform struct {
	Name      string
	Normalize *Normalization
	Placement Placement
}

// Normalization recenters the import's combined bounding-box centroid at the
// origin and uniformly rescales so the largest extent spans exactly 2 units.
type Normalization struct {
	Offset mgl64.Vec3 // -centroid * Scale, added to each object location
	Scale  float64
}

// Placement is the scene-level transform in Blender convention.
type Placement struct {
	Scale    mgl64.Vec3
	EulerZXY mgl64.Vec3 // radians, rotation_euler with order ZXY
	Location mgl64.Vec3
}

// Matrix expands the placement into a single world matrix
// (translate · rotate · scale).
func (p Placement) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.Location[0], p.Location[1], p.Location[2]).
		Mul4(RotationMatrix(p.EulerZXY).Mat4()).
		Mul4(mgl64.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2]))
}

// AssignMaterial replaces whatever materials an imported asset brought with
// it by the named scene material.
type AssignMaterial struct {
	Name     string
	Material string
}

func (CreateMaterial) instruction()  {}
func (CreateCamera) instruction()    {}
func (ConfigureRender) instruction() {}
func (CreateSphere) instruction()    {}
func (CreateQuad) instruction()      {}
func (ImportAsset) instruction()     {}
func (ApplyTransform) instruction()  {}
func (AssignMaterial) instruction()  {}

// Package scenedesc models and parses Skewer scene descriptions.
//
// A scene description is a JSON or YAML document with top-level keys
// materials, camera, render and objects. All geometric values are in
// Skewer's Y-up convention; nothing in this package converts coordinates.
package scenedesc

// Scene is a parsed, validated scene description. Object order is preserved
// from the document; it determines instantiation order and deterministic
// object naming.
type Scene struct {
	Materials map[string]Material
	Camera    Camera
	Render    Render
	Objects   []Object

	// Dir is the directory of the scene file. Relative asset paths
	// resolve against it.
	Dir string
}

// MaterialKind enumerates the supported material kinds.
type MaterialKind int

const (
	Lambertian MaterialKind = iota
	Metal
	Dielectric
)

// Material is one material definition. A material has exactly one kind;
// emission is an orthogonal modifier available on any kind.
type Material struct {
	Kind      MaterialKind
	Albedo    [3]float64
	Roughness float64 // metal only, >= 0
	IOR       float64 // dielectric only, > 0
	Emission  *[3]float64
}

// Camera is a look-at camera definition in Skewer convention.
type Camera struct {
	LookFrom [3]float64
	LookAt   [3]float64
	VUp      [3]float64
	VFOV     float64 // full vertical angle of view, degrees, in (0, 180)
}

// Render holds render settings.
type Render struct {
	Samples    int
	MaxDepth   int
	Width      int
	Height     int
	OutputPath string
}

// Object is a tagged variant over the supported object kinds. Exactly one of
// Sphere, Quad, Asset is non-nil; all nil means the declared type string was
// not recognized, kept so the assembler can warn and skip it without
// aborting the conversion.
type Object struct {
	Type     string // raw type string from the document
	Material string
	Sphere   *Sphere
	Quad     *Quad
	Asset    *Asset
}

// Sphere is a sphere primitive.
type Sphere struct {
	Center [3]float64
	Radius float64
}

// Quad is a single four-vertex face. The vertices are intended to be
// coplanar; topology is not validated.
type Quad struct {
	Vertices [4][3]float64
}

// Asset references an external OBJ mesh with an optional auto-fit
// normalization and a scene-level transform.
type Asset struct {
	File      string
	AutoFit   bool
	Transform Transform
}

// Transform is a scene-level transform in Skewer convention. Rotation
// angles are degrees applied in Skewer's YXZ order.
type Transform struct {
	Scale     [3]float64
	Rotate    [3]float64
	Translate [3]float64
}

// IdentityTransform returns the default transform.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float64{1, 1, 1}}
}

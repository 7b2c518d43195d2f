package convert

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skewer-project/skewer2blend/internal/objfile"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

func testScene() *scenedesc.Scene {
	return &scenedesc.Scene{
		Materials: map[string]scenedesc.Material{
			"gray": {Kind: scenedesc.Lambertian, Albedo: [3]float64{0.8, 0.8, 0.8}},
		},
		Camera: scenedesc.Camera{
			LookFrom: [3]float64{0, 0, 5},
			LookAt:   [3]float64{0, 1, 0},
			VUp:      [3]float64{0, 1, 0},
			VFOV:     40,
		},
		Render: scenedesc.Render{Samples: 128, MaxDepth: 8, Width: 800, Height: 600, OutputPath: "render"},
	}
}

func noBounds(path string) ([]objfile.Group, error) {
	return nil, errors.New("unexpected asset read")
}

func TestAssembleScenario(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "sphere", Material: "gray", Sphere: &scenedesc.Sphere{Center: [3]float64{0, 1, 0}, Radius: 1}},
	}

	res, err := Assemble(sc, noBounds)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Instructions, 4)

	mat, ok := res.Instructions[0].(CreateMaterial)
	require.True(t, ok)
	assert.Equal(t, "gray", mat.Name)
	assert.Equal(t, 1.0, mat.Params.Roughness)

	cam, ok := res.Instructions[1].(CreateCamera)
	require.True(t, ok)
	eye := cam.World.Col(3).Vec3()
	assert.InDelta(t, -5.0, eye[1], 1e-9)

	ren, ok := res.Instructions[2].(ConfigureRender)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 0}, ren.Background)
	assert.Equal(t, 0.0, ren.BackgroundStrength)
	assert.Equal(t, 128, ren.Samples)

	sphere, ok := res.Instructions[3].(CreateSphere)
	require.True(t, ok)
	assert.Equal(t, "Sphere_0", sphere.Name)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, sphere.Center)
	assert.Equal(t, 1.0, sphere.Radius)
	assert.Equal(t, "gray", sphere.Material)
}

func TestAssembleUnknownTypeSkipped(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "sphere", Material: "gray", Sphere: &scenedesc.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1}},
		{Type: "unsupported_primitive"},
		{Type: "quad", Material: "gray", Quad: &scenedesc.Quad{Vertices: [4][3]float64{
			{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1},
		}}},
	}

	res, err := Assemble(sc, noBounds)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "unsupported_primitive")

	// Both remaining objects are still produced, names keyed by document
	// index.
	var names []string
	for _, in := range res.Instructions {
		switch in := in.(type) {
		case CreateSphere:
			names = append(names, in.Name)
		case CreateQuad:
			names = append(names, in.Name)
		}
	}
	assert.Equal(t, []string{"Sphere_0", "Quad_2"}, names)
}

func TestAssembleQuadVertices(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "quad", Material: "gray", Quad: &scenedesc.Quad{Vertices: [4][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		}}},
	}
	res, err := Assemble(sc, noBounds)
	require.NoError(t, err)
	quad := res.Instructions[3].(CreateQuad)
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, quad.Vertices[2])
}

func TestAssembleAsset(t *testing.T) {
	sc := testScene()
	sc.Dir = "/scenes"
	sc.Objects = []scenedesc.Object{
		{Type: "obj", Material: "gray", Asset: &scenedesc.Asset{
			File:      "bunny.obj",
			AutoFit:   true,
			Transform: scenedesc.IdentityTransform(),
		}},
	}

	var gotPath string
	reader := func(path string) ([]objfile.Group, error) {
		gotPath = path
		return []objfile.Group{
			{Name: "bunny", Min: [3]float64{-2, 0, -2}, Max: [3]float64{2, 4, 2}, Verts: 100},
		}, nil
	}

	res, err := Assemble(sc, reader)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "/scenes/bunny.obj", gotPath)
	require.Len(t, res.Instructions, 6)

	imp := res.Instructions[3].(ImportAsset)
	assert.Equal(t, "Asset_0", imp.Name)
	assert.Equal(t, "/scenes/bunny.obj", imp.Path)
	assert.Equal(t, "Y", imp.UpAxis)
	assert.Equal(t, "-Z", imp.ForwardAxis)

	at := res.Instructions[4].(ApplyTransform)
	require.NotNil(t, at.Normalize)
	assert.InDelta(t, 0.5, at.Normalize.Scale, 1e-9)

	am := res.Instructions[5].(AssignMaterial)
	assert.Equal(t, "Asset_0", am.Name)
	assert.Equal(t, "gray", am.Material)
}

func TestAssembleAssetEmptyImport(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "obj", Material: "gray", Asset: &scenedesc.Asset{File: "empty.obj", Transform: scenedesc.IdentityTransform()}},
	}
	reader := func(path string) ([]objfile.Group, error) { return nil, nil }

	res, err := Assemble(sc, reader)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "produced no objects")
	assert.Len(t, res.Instructions, 3) // materials + camera + render only
}

func TestAssembleAssetReadFailure(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "obj", Material: "gray", Asset: &scenedesc.Asset{File: "gone.obj", Transform: scenedesc.IdentityTransform()}},
		{Type: "sphere", Material: "gray", Sphere: &scenedesc.Sphere{Center: [3]float64{0, 0, 0}, Radius: 2}},
	}
	reader := func(path string) ([]objfile.Group, error) { return nil, errors.New("no such file") }

	res, err := Assemble(sc, reader)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)

	// The failed asset does not stop the sphere after it.
	last := res.Instructions[len(res.Instructions)-1].(CreateSphere)
	assert.Equal(t, "Sphere_1", last.Name)
}

func TestAssembleDegenerateCameraFatal(t *testing.T) {
	sc := testScene()
	sc.Camera.LookAt = sc.Camera.LookFrom
	_, err := Assemble(sc, noBounds)
	require.Error(t, err)
	assert.ErrorIs(t, err, scenedesc.ErrConfig)
}

func TestDumpJSON(t *testing.T) {
	sc := testScene()
	sc.Objects = []scenedesc.Object{
		{Type: "sphere", Material: "gray", Sphere: &scenedesc.Sphere{Center: [3]float64{0, 1, 0}, Radius: 1}},
	}
	res, err := Assemble(sc, noBounds)
	require.NoError(t, err)

	data, err := DumpJSON(res.Instructions)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"op": "create_material"`)
	assert.Contains(t, s, `"op": "create_camera"`)
	assert.Contains(t, s, `"op": "create_sphere"`)
}

package scenedesc

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the document omits a field.
const (
	DefaultSamples  = 128
	DefaultMaxDepth = 8
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultOutput   = "render"
	DefaultIOR      = 1.5
)

// File-level structs matching the document schema. Pointer fields
// distinguish "absent" from zero so defaults apply only when a key is
// missing.
type sceneFile struct {
	Materials map[string]materialFile `json:"materials" yaml:"materials"`
	Camera    *cameraFile             `json:"camera" yaml:"camera"`
	Render    *renderFile             `json:"render" yaml:"render"`
	Objects   []objectFile            `json:"objects" yaml:"objects"`
}

type materialFile struct {
	Type      string    `json:"type" yaml:"type"`
	Albedo    []float64 `json:"albedo" yaml:"albedo"`
	Roughness *float64  `json:"roughness" yaml:"roughness"`
	IOR       *float64  `json:"ior" yaml:"ior"`
	Emission  []float64 `json:"emission" yaml:"emission"`
}

type cameraFile struct {
	LookFrom []float64 `json:"look_from" yaml:"look_from"`
	LookAt   []float64 `json:"look_at" yaml:"look_at"`
	VUp      []float64 `json:"vup" yaml:"vup"`
	VFOV     *float64  `json:"vfov" yaml:"vfov"`
}

type renderFile struct {
	Samples  *int       `json:"samples_per_pixel" yaml:"samples_per_pixel"`
	MaxDepth *int       `json:"max_depth" yaml:"max_depth"`
	Image    *imageFile `json:"image" yaml:"image"`
}

type imageFile struct {
	Width   *int   `json:"width" yaml:"width"`
	Height  *int   `json:"height" yaml:"height"`
	EXRFile string `json:"exrfile" yaml:"exrfile"`
	Outfile string `json:"outfile" yaml:"outfile"`
}

type objectFile struct {
	Type      string         `json:"type" yaml:"type"`
	Material  string         `json:"material" yaml:"material"`
	Center    []float64      `json:"center" yaml:"center"`
	Radius    *float64       `json:"radius" yaml:"radius"`
	Vertices  [][]float64    `json:"vertices" yaml:"vertices"`
	File      string         `json:"file" yaml:"file"`
	AutoFit   bool           `json:"auto_fit" yaml:"auto_fit"`
	Transform *transformFile `json:"transform" yaml:"transform"`
}

type transformFile struct {
	Scale     []float64 `json:"scale" yaml:"scale"`
	Rotate    []float64 `json:"rotate" yaml:"rotate"`
	Translate []float64 `json:"translate" yaml:"translate"`
}

// Load reads and validates a scene description from a JSON or YAML file,
// dispatched on the file extension. Every error wraps ErrConfig.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenedesc: read %s: %v: %w", path, err, ErrConfig)
	}

	var file sceneFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &file)
	default:
		err = json.Unmarshal(raw, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("scenedesc: parse %s: %v: %w", path, err, ErrConfig)
	}

	sc, err := build(&file)
	if err != nil {
		return nil, err
	}
	sc.Dir = filepath.Dir(path)
	return sc, nil
}

func build(file *sceneFile) (*Scene, error) {
	sc := &Scene{Materials: make(map[string]Material, len(file.Materials))}

	for name, mf := range file.Materials {
		mat, err := buildMaterial(name, mf)
		if err != nil {
			return nil, err
		}
		sc.Materials[name] = mat
	}

	cam, err := buildCamera(file.Camera)
	if err != nil {
		return nil, err
	}
	sc.Camera = cam

	ren, err := buildRender(file.Render)
	if err != nil {
		return nil, err
	}
	sc.Render = ren

	for i, of := range file.Objects {
		obj, err := buildObject(i, of)
		if err != nil {
			return nil, err
		}
		sc.Objects = append(sc.Objects, obj)
	}

	// Material references must resolve before any conversion work starts.
	for i, obj := range sc.Objects {
		if obj.Sphere == nil && obj.Quad == nil && obj.Asset == nil {
			continue // unknown type, skipped later with a warning
		}
		if _, ok := sc.Materials[obj.Material]; !ok {
			return nil, configErrf("object #%d references unknown material %q", i, obj.Material)
		}
	}

	return sc, nil
}

func buildMaterial(name string, mf materialFile) (Material, error) {
	mat := Material{Albedo: [3]float64{1, 1, 1}}

	switch mf.Type {
	case "lambertian", "":
		mat.Kind = Lambertian
	case "metal":
		mat.Kind = Metal
		if mf.Roughness != nil {
			mat.Roughness = *mf.Roughness
		}
		if mat.Roughness < 0 || !finite(mat.Roughness) {
			return Material{}, configErrf("material %q: roughness must be >= 0", name)
		}
	case "dielectric":
		mat.Kind = Dielectric
		mat.IOR = DefaultIOR
		if mf.IOR != nil {
			mat.IOR = *mf.IOR
		}
		if mat.IOR <= 0 || !finite(mat.IOR) {
			return Material{}, configErrf("material %q: ior must be > 0", name)
		}
	default:
		return Material{}, configErrf("material %q: unknown type %q", name, mf.Type)
	}

	if mf.Albedo != nil {
		a, err := triple(mf.Albedo)
		if err != nil {
			return Material{}, configErrf("material %q: albedo: %v", name, err)
		}
		mat.Albedo = a
	}

	if mf.Emission != nil {
		e, err := triple(mf.Emission)
		if err != nil {
			return Material{}, configErrf("material %q: emission: %v", name, err)
		}
		for _, c := range e {
			if c < 0 {
				return Material{}, configErrf("material %q: emission components must be >= 0", name)
			}
		}
		mat.Emission = &e
	}

	return mat, nil
}

func buildCamera(cf *cameraFile) (Camera, error) {
	if cf == nil {
		return Camera{}, configErrf("camera block is required")
	}
	var cam Camera
	var err error
	if cam.LookFrom, err = triple(cf.LookFrom); err != nil {
		return Camera{}, configErrf("camera: look_from: %v", err)
	}
	if cam.LookAt, err = triple(cf.LookAt); err != nil {
		return Camera{}, configErrf("camera: look_at: %v", err)
	}
	if cam.VUp, err = triple(cf.VUp); err != nil {
		return Camera{}, configErrf("camera: vup: %v", err)
	}
	if cf.VFOV == nil {
		return Camera{}, configErrf("camera: vfov is required")
	}
	cam.VFOV = *cf.VFOV
	if !finite(cam.VFOV) || cam.VFOV <= 0 || cam.VFOV >= 180 {
		return Camera{}, configErrf("camera: vfov %v is outside (0, 180)", cam.VFOV)
	}
	return cam, nil
}

func buildRender(rf *renderFile) (Render, error) {
	ren := Render{
		Samples:    DefaultSamples,
		MaxDepth:   DefaultMaxDepth,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		OutputPath: DefaultOutput,
	}
	if rf == nil {
		return ren, nil
	}
	if rf.Samples != nil {
		ren.Samples = *rf.Samples
	}
	if rf.MaxDepth != nil {
		ren.MaxDepth = *rf.MaxDepth
	}
	if rf.Image != nil {
		if rf.Image.Width != nil {
			ren.Width = *rf.Image.Width
		}
		if rf.Image.Height != nil {
			ren.Height = *rf.Image.Height
		}
		// exrfile wins over outfile, matching the Skewer renderer.
		if rf.Image.EXRFile != "" {
			ren.OutputPath = rf.Image.EXRFile
		} else if rf.Image.Outfile != "" {
			ren.OutputPath = rf.Image.Outfile
		}
	}
	if ren.Samples < 1 {
		return Render{}, configErrf("render: samples_per_pixel must be >= 1")
	}
	if ren.MaxDepth < 0 {
		return Render{}, configErrf("render: max_depth must be >= 0")
	}
	if ren.Width < 1 || ren.Height < 1 {
		return Render{}, configErrf("render: image size must be >= 1x1")
	}
	return ren, nil
}

func buildObject(idx int, of objectFile) (Object, error) {
	obj := Object{Type: of.Type, Material: of.Material}

	switch of.Type {
	case "sphere":
		center, err := triple(of.Center)
		if err != nil {
			return Object{}, configErrf("object #%d (sphere): center: %v", idx, err)
		}
		if of.Radius == nil || *of.Radius <= 0 || !finite(*of.Radius) {
			return Object{}, configErrf("object #%d (sphere): radius must be > 0", idx)
		}
		obj.Sphere = &Sphere{Center: center, Radius: *of.Radius}

	case "quad":
		if len(of.Vertices) != 4 {
			return Object{}, configErrf("object #%d (quad): expected 4 vertices, got %d", idx, len(of.Vertices))
		}
		var q Quad
		for i, v := range of.Vertices {
			vt, err := triple(v)
			if err != nil {
				return Object{}, configErrf("object #%d (quad): vertex %d: %v", idx, i, err)
			}
			q.Vertices[i] = vt
		}
		obj.Quad = &q

	case "obj":
		if of.File == "" {
			return Object{}, configErrf("object #%d (obj): file is required", idx)
		}
		tf, err := buildTransform(idx, of.Transform)
		if err != nil {
			return Object{}, err
		}
		obj.Asset = &Asset{File: of.File, AutoFit: of.AutoFit, Transform: tf}

	default:
		// Unrecognized type: keep the raw string, no variant. The
		// assembler reports it as a warning and skips the object.
	}

	return obj, nil
}

func buildTransform(idx int, tf *transformFile) (Transform, error) {
	out := IdentityTransform()
	if tf == nil {
		return out, nil
	}
	var err error
	if tf.Scale != nil {
		if out.Scale, err = triple(tf.Scale); err != nil {
			return Transform{}, configErrf("object #%d: transform scale: %v", idx, err)
		}
		for _, s := range out.Scale {
			if s <= 0 {
				return Transform{}, configErrf("object #%d: transform scale must be > 0", idx)
			}
		}
	}
	if tf.Rotate != nil {
		if out.Rotate, err = triple(tf.Rotate); err != nil {
			return Transform{}, configErrf("object #%d: transform rotate: %v", idx, err)
		}
	}
	if tf.Translate != nil {
		if out.Translate, err = triple(tf.Translate); err != nil {
			return Transform{}, configErrf("object #%d: transform translate: %v", idx, err)
		}
	}
	return out, nil
}

// triple converts a slice into a [3]float64, rejecting wrong arity and
// non-finite components (NaN can reach us through YAML's .nan).
func triple(v []float64) ([3]float64, error) {
	if len(v) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	for _, c := range v {
		if !finite(c) {
			return [3]float64{}, fmt.Errorf("non-finite component %v", c)
		}
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func configErrf(format string, args ...any) error {
	return fmt.Errorf("scenedesc: "+format+": %w", append(args, ErrConfig)...)
}

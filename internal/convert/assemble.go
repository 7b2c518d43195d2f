// Package convert turns a validated Skewer scene description into an
// ordered instruction list in Blender conventions. It is the pure half of
// the converter: no host state, no file output, fully unit-testable.
package convert

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/skewer-project/skewer2blend/internal/coords"
	"github.com/skewer-project/skewer2blend/internal/objfile"
	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

// Result is the outcome of assembling one scene: the ordered instruction
// list plus any recoverable warnings raised along the way.
type Result struct {
	Instructions []Instruction
	Warnings     []string
}

func (r *Result) add(in Instruction) {
	r.Instructions = append(r.Instructions, in)
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// BoundsReader supplies per-group vertex bounds for an asset file.
// objfile.ReadBounds satisfies it; tests substitute their own.
type BoundsReader func(path string) ([]objfile.Group, error)

// Assemble converts the scene into the instruction list for a host adapter.
// Unknown object types and failed or empty asset reads are skipped with a
// warning; a degenerate camera is fatal. Objects are processed in document
// order and named deterministically by their index.
func Assemble(sc *scenedesc.Scene, readBounds BoundsReader) (*Result, error) {
	res := &Result{}

	// Materials first, sorted by name: the map has no meaningful order and
	// the instruction stream must be deterministic.
	names := make([]string, 0, len(sc.Materials))
	for name := range sc.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res.add(CreateMaterial{Name: name, Params: TranslateMaterial(sc.Materials[name])})
	}

	cam, err := BuildCamera(sc.Camera)
	if err != nil {
		return nil, err
	}
	res.add(cam)

	res.add(ConfigureRender{
		Samples:    sc.Render.Samples,
		MaxBounces: sc.Render.MaxDepth,
		Width:      sc.Render.Width,
		Height:     sc.Render.Height,
		OutputPath: sc.Render.OutputPath,
		// Background stays black at zero strength.
	})

	for i, obj := range sc.Objects {
		switch {
		case obj.Sphere != nil:
			res.add(CreateSphere{
				Name:     fmt.Sprintf("Sphere_%d", i),
				Center:   coords.ToBlender(obj.Sphere.Center),
				Radius:   obj.Sphere.Radius,
				Material: obj.Material,
			})
		case obj.Quad != nil:
			q := CreateQuad{Name: fmt.Sprintf("Quad_%d", i), Material: obj.Material}
			for j, v := range obj.Quad.Vertices {
				q.Vertices[j] = coords.ToBlender(v)
			}
			res.add(q)
		case obj.Asset != nil:
			assembleAsset(res, sc, i, obj, readBounds)
		default:
			res.warnf("unknown object type %q (object #%d), skipping", obj.Type, i)
		}
	}

	return res, nil
}

func assembleAsset(res *Result, sc *scenedesc.Scene, idx int, obj scenedesc.Object, readBounds BoundsReader) {
	a := obj.Asset
	path := a.File
	if sc.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(sc.Dir, path)
	}

	groups, err := readBounds(path)
	if err != nil {
		res.warnf("asset %s: %v, skipping", a.File, err)
		return
	}
	if len(groups) == 0 {
		res.warnf("asset %s produced no objects, skipping", a.File)
		return
	}

	name := fmt.Sprintf("Asset_%d", idx)
	res.add(ImportAsset{Name: name, Path: path, UpAxis: "Y", ForwardAxis: "-Z"})

	at, warns := ComposeAsset(name, a.Transform, a.AutoFit, groups)
	res.Warnings = append(res.Warnings, warns...)
	res.add(at)

	res.add(AssignMaterial{Name: name, Material: obj.Material})
}

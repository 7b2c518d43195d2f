// Package blend is the host adapter: it renders an instruction list as a
// Python script for Blender's bpy API. Running the script under
// `blender --background --python <script>` rebuilds the converted scene and
// saves it as a .blend file.
//
// The generated script is self-contained and version-tolerant: shading
// parameters whose socket names differ between Blender 3.x and 4.x go
// through an ordered candidate-name lookup, and a name that is absent in the
// running Blender skips that one field only.
package blend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skewer-project/skewer2blend/internal/convert"
)

// paramCandidates maps a logical shading field to the Principled BSDF input
// names to try in order. 4.x renamed several sockets; trying the 3.x name
// second keeps one script working across versions.
var paramCandidates = map[string][]string{
	"specular":       {"Specular IOR Level", "Specular"},
	"transmission":   {"Transmission Weight", "Transmission"},
	"emission_color": {"Emission Color", "Emission"},
}

// Script renders the instruction list as Python source. blendPath, when
// non-empty, is where the script saves the resulting .blend.
func Script(instrs []convert.Instruction, blendPath string) []byte {
	var b strings.Builder
	e := emitter{b: &b}

	e.preamble()
	for _, in := range instrs {
		switch in := in.(type) {
		case convert.CreateMaterial:
			e.material(in)
		case convert.CreateCamera:
			e.camera(in)
		case convert.ConfigureRender:
			e.render(in)
		case convert.CreateSphere:
			e.sphere(in)
		case convert.CreateQuad:
			e.quad(in)
		case convert.ImportAsset:
			e.importAsset(in)
		case convert.ApplyTransform:
			e.applyTransform(in)
		case convert.AssignMaterial:
			e.assignMaterial(in)
		}
	}
	if blendPath != "" {
		e.f("\nbpy.ops.wm.save_as_mainfile(filepath=%s)\n", pyStr(blendPath))
		e.f("print(\"Saved: \" + %s)\n", pyStr(blendPath))
	}
	return []byte(b.String())
}

// WriteFile writes the generated script to path.
func WriteFile(path string, instrs []convert.Instruction, blendPath string) error {
	if err := os.WriteFile(path, Script(instrs, blendPath), 0644); err != nil {
		return fmt.Errorf("blend: write %s: %w", path, err)
	}
	return nil
}

type emitter struct {
	b *strings.Builder
}

func (e emitter) f(format string, args ...any) {
	fmt.Fprintf(e.b, format, args...)
}

func (e emitter) preamble() {
	e.f("import bpy\nimport mathutils\n\n")
	e.f("def set_input(bsdf, names, value):\n")
	e.f("    # First matching socket name wins; all missing skips the field.\n")
	e.f("    for n in names:\n")
	e.f("        if n in bsdf.inputs:\n")
	e.f("            bsdf.inputs[n].default_value = value\n")
	e.f("            return\n\n")
	e.f("# Remove default objects (Cube, Camera, Light).\n")
	e.f("bpy.ops.object.select_all(action='SELECT')\n")
	e.f("bpy.ops.object.delete(use_global=False)\n\n")
	e.f("mats = {}\n")
	e.f("objs = {}\n")
}

func (e emitter) material(in convert.CreateMaterial) {
	p := in.Params
	e.f("\nmat = bpy.data.materials.new(name=%s)\n", pyStr(in.Name))
	e.f("mat.use_nodes = True\n")
	e.f("nodes = mat.node_tree.nodes\n")
	e.f("nodes.clear()\n")
	e.f("out = nodes.new(\"ShaderNodeOutputMaterial\")\n")
	e.f("bsdf = nodes.new(\"ShaderNodeBsdfPrincipled\")\n")
	e.f("mat.node_tree.links.new(bsdf.outputs[\"BSDF\"], out.inputs[\"Surface\"])\n")
	e.f("bsdf.inputs[\"Base Color\"].default_value = %s\n", pyRGBA(p.BaseColor))
	e.f("bsdf.inputs[\"Metallic\"].default_value = %s\n", pyFloat(p.Metallic))
	e.f("bsdf.inputs[\"Roughness\"].default_value = %s\n", pyFloat(p.Roughness))
	if p.DisableSpecular {
		e.f("set_input(bsdf, %s, 0.0)\n", pyStrList(paramCandidates["specular"]))
	}
	if p.IOR > 0 {
		e.f("bsdf.inputs[\"IOR\"].default_value = %s\n", pyFloat(p.IOR))
	}
	if p.Transmission > 0 {
		e.f("set_input(bsdf, %s, %s)\n", pyStrList(paramCandidates["transmission"]), pyFloat(p.Transmission))
	}
	if p.BlendHashed {
		e.f("mat.blend_method = 'HASHED'\n")
	}
	if p.Emission != nil {
		e.f("set_input(bsdf, %s, %s)\n", pyStrList(paramCandidates["emission_color"]), pyRGBA(p.Emission.Color))
		e.f("set_input(bsdf, [\"Emission Strength\"], %s)\n", pyFloat(p.Emission.Strength))
	}
	e.f("mats[%s] = mat\n", pyStr(in.Name))
}

func (e emitter) camera(in convert.CreateCamera) {
	loc := in.World.Col(3).Vec3()
	e.f("\nbpy.ops.object.camera_add(location=%s)\n", pyVec3(loc))
	e.f("cam = bpy.context.object\n")
	e.f("bpy.context.scene.camera = cam\n")
	e.f("cam.matrix_world = mathutils.Matrix((\n")
	for r := 0; r < 4; r++ {
		e.f("    (%s, %s, %s, %s),\n",
			pyFloat(in.World.At(r, 0)), pyFloat(in.World.At(r, 1)),
			pyFloat(in.World.At(r, 2)), pyFloat(in.World.At(r, 3)))
	}
	e.f("))\n")
	e.f("cam.data.sensor_fit = 'VERTICAL'\n")
	e.f("cam.data.angle = %s\n", pyFloat(in.VFOV))
}

func (e emitter) render(in convert.ConfigureRender) {
	e.f("\nscene = bpy.context.scene\n")
	e.f("scene.render.engine = 'CYCLES'\n")
	e.f("scene.cycles.samples = %d\n", in.Samples)
	e.f("scene.cycles.max_bounces = %d\n", in.MaxBounces)
	e.f("scene.render.resolution_x = %d\n", in.Width)
	e.f("scene.render.resolution_y = %d\n", in.Height)
	e.f("scene.render.film_transparent = False\n")
	e.f("scene.render.filepath = %s\n", pyStr(stem(in.OutputPath)))
	e.f("world = scene.world or bpy.data.worlds.new(\"World\")\n")
	e.f("scene.world = world\n")
	e.f("world.use_nodes = True\n")
	e.f("bg = world.node_tree.nodes.get(\"Background\")\n")
	e.f("if bg:\n")
	e.f("    bg.inputs[\"Color\"].default_value = %s\n", pyRGBA(in.Background))
	e.f("    bg.inputs[\"Strength\"].default_value = %s\n", pyFloat(in.BackgroundStrength))
}

func (e emitter) sphere(in convert.CreateSphere) {
	e.f("\nbpy.ops.mesh.primitive_uv_sphere_add(radius=%s, location=%s, segments=64, ring_count=32)\n",
		pyFloat(in.Radius), pyVec3(in.Center))
	e.f("obj = bpy.context.object\n")
	e.f("obj.name = %s\n", pyStr(in.Name))
	e.f("obj.data.materials.append(mats[%s])\n", pyStr(in.Material))
}

func (e emitter) quad(in convert.CreateQuad) {
	e.f("\nmesh = bpy.data.meshes.new(%s)\n", pyStr(in.Name))
	verts := make([]string, 4)
	for i, v := range in.Vertices {
		verts[i] = pyVec3(v)
	}
	e.f("mesh.from_pydata([%s], [], [(0, 1, 2, 3)])\n", strings.Join(verts, ", "))
	e.f("mesh.update()\n")
	e.f("obj = bpy.data.objects.new(%s, mesh)\n", pyStr(in.Name))
	e.f("bpy.context.collection.objects.link(obj)\n")
	e.f("obj.data.materials.append(mats[%s])\n", pyStr(in.Material))
}

func (e emitter) importAsset(in convert.ImportAsset) {
	e.f("\nbpy.ops.object.select_all(action='DESELECT')\n")
	e.f("if bpy.app.version >= (4, 0, 0):\n")
	e.f("    bpy.ops.wm.obj_import(filepath=%s, up_axis=%s, forward_axis=%s)\n",
		pyStr(in.Path), pyStr(in.UpAxis), pyStr(axisName4x(in.ForwardAxis)))
	e.f("else:\n")
	e.f("    bpy.ops.import_scene.obj(filepath=%s, axis_up=%s, axis_forward=%s)\n",
		pyStr(in.Path), pyStr(in.UpAxis), pyStr(in.ForwardAxis))
	e.f("objs[%s] = list(bpy.context.selected_objects)\n", pyStr(in.Name))
}

func (e emitter) applyTransform(in convert.ApplyTransform) {
	e.f("\nsel = objs.get(%s, [])\n", pyStr(in.Name))
	if n := in.Normalize; n != nil {
		e.f("for o in sel:\n")
		e.f("    o.location = o.location + mathutils.Vector(%s)\n", pyVec3(n.Offset))
		e.f("    o.scale = o.scale * %s\n", pyFloat(n.Scale))
		e.f("# Bake so the scene-level transform composes on normalized geometry.\n")
		e.f("bpy.ops.object.select_all(action='DESELECT')\n")
		e.f("for o in sel:\n")
		e.f("    o.select_set(True)\n")
		e.f("if sel:\n")
		e.f("    bpy.context.view_layer.objects.active = sel[0]\n")
		e.f("    bpy.ops.object.transform_apply(location=True, scale=True)\n")
	}
	p := in.Placement
	e.f("for o in sel:\n")
	e.f("    o.scale = %s\n", pyVec3(p.Scale))
	e.f("    o.rotation_euler.order = 'ZXY'\n")
	e.f("    o.rotation_euler = %s\n", pyVec3(p.EulerZXY))
	e.f("    o.location = %s\n", pyVec3(p.Location))
}

func (e emitter) assignMaterial(in convert.AssignMaterial) {
	e.f("\nfor o in objs.get(%s, []):\n", pyStr(in.Name))
	e.f("    if o.type == 'MESH':\n")
	e.f("        o.data.materials.clear()\n")
	e.f("        o.data.materials.append(mats[%s])\n", pyStr(in.Material))
}

// axisName4x maps a short axis hint to the 4.x enum name ("-Z" → "NEGATIVE_Z").
func axisName4x(axis string) string {
	if rest, ok := strings.CutPrefix(axis, "-"); ok {
		return "NEGATIVE_" + rest
	}
	return axis
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func pyStr(s string) string {
	return fmt.Sprintf("%q", s)
}

func pyStrList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pyStr(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	// Keep Python reading it as a float.
	if !strings.ContainsAny(s, ".einf") {
		s += ".0"
	}
	return s
}

func pyVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", pyFloat(v[0]), pyFloat(v[1]), pyFloat(v[2]))
}

func pyRGBA(c [3]float64) string {
	return fmt.Sprintf("(%s, %s, %s, 1.0)", pyFloat(c[0]), pyFloat(c[1]), pyFloat(c[2]))
}

package convert

import "encoding/json"

// DumpJSON serializes an instruction list for inspection, tagging each
// instruction with its operation name.
func DumpJSON(instrs []Instruction) ([]byte, error) {
	type entry struct {
		Op   string      `json:"op"`
		Args Instruction `json:"args"`
	}
	out := make([]entry, len(instrs))
	for i, in := range instrs {
		out[i] = entry{Op: opName(in), Args: in}
	}
	return json.MarshalIndent(out, "", "  ")
}

func opName(in Instruction) string {
	switch in.(type) {
	case CreateMaterial:
		return "create_material"
	case CreateCamera:
		return "create_camera"
	case ConfigureRender:
		return "configure_render"
	case CreateSphere:
		return "create_sphere"
	case CreateQuad:
		return "create_quad"
	case ImportAsset:
		return "import_asset"
	case ApplyTransform:
		return "apply_transform"
	case AssignMaterial:
		return "assign_material"
	default:
		return "unknown"
	}
}

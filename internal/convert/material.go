package convert

import (
	"math"

	"github.com/skewer-project/skewer2blend/internal/scenedesc"
)

// ShadingParams is the decomposed principled-shader parameter set handed to
// the host.
type ShadingParams struct {
	BaseColor       [3]float64
	Metallic        float64
	Roughness       float64
	IOR             float64 // 0 when the material does not set it
	Transmission    float64
	DisableSpecular bool // force the specular contribution to 0
	BlendHashed     bool // request alpha-hashed compositing
	Emission        *Emission
}

// Emission is a unit-peak color with a separate scalar strength, for shading
// models that only accept colors in [0,1] and take intensity as a multiplier.
type Emission struct {
	Color    [3]float64
	Strength float64
}

// TranslateMaterial maps a Skewer material definition onto principled
// shading parameters.
//
// lambertian is fully diffuse: roughness 1, no metallic, specular disabled.
// metal is fully metallic with the given roughness (0 = mirror).
// dielectric is perfectly smooth, fully transmissive glass; it needs
// alpha-hashed compositing since the surface is not opaque.
func TranslateMaterial(def scenedesc.Material) ShadingParams {
	p := ShadingParams{BaseColor: def.Albedo}
	switch def.Kind {
	case scenedesc.Lambertian:
		p.Roughness = 1
		p.DisableSpecular = true
	case scenedesc.Metal:
		p.Metallic = 1
		p.Roughness = def.Roughness
	case scenedesc.Dielectric:
		p.IOR = def.IOR
		p.Transmission = 1
		p.BlendHashed = true
	}
	p.Emission = translateEmission(def.Emission)
	return p
}

// translateEmission normalizes an emission vector to a unit-peak color and a
// scalar strength. Absent or all-zero emission yields none; components are
// already validated non-negative, so a zero peak means all-zero.
func translateEmission(e *[3]float64) *Emission {
	if e == nil {
		return nil
	}
	strength := math.Max(e[0], math.Max(e[1], e[2]))
	if strength <= 0 {
		return nil
	}
	return &Emission{
		Color:    [3]float64{e[0] / strength, e[1] / strength, e[2] / strength},
		Strength: strength,
	}
}

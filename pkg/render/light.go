package render

import (
	"github.com/chewxy/math32"

	"github.com/chazu/cardstock/pkg/scene"
)

// shadeConfig holds precomputed lighting parameters for one material under
// the scene's lights. Area lights are approximated as point emitters with
// inverse-square falloff; that keeps the highlight placement right, which is
// what the preview is for.
type shadeConfig struct {
	base      [3]float32 // linear albedo
	ambient   float32
	specInt   float32 // specular intensity
	specPow   float32 // Blinn-Phong exponent, derived from roughness
	lights    []pointLight
	viewPos   vec3
}

type pointLight struct {
	pos       vec3
	intensity float32 // premultiplied energy scale
}

// lightScale converts host light energy (watts) to the preview's unitless
// intensity. Chosen so the reference scene (500W at ~2m) reads well.
const lightScale = 0.02

// defaultAmbient keeps unlit faces from going fully black in the preview.
const defaultAmbient = 0.05

func newShadeConfig(s *scene.Scene, material string, camPos vec3) shadeConfig {
	cfg := shadeConfig{
		base:    [3]float32{0.8, 0.8, 0.8},
		ambient: defaultAmbient,
		specInt: 0.5,
		specPow: 32,
		viewPos: camPos,
	}

	if v, ok := s.MaterialValue(material, scene.BaseColorAliases); ok && len(v) >= 3 {
		cfg.base = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	if v, ok := s.MaterialValue(material, scene.RoughnessAliases); ok && len(v) >= 1 {
		// Rougher surfaces get broader, dimmer highlights.
		r := float32(v[0])
		if r < 0.05 {
			r = 0.05
		}
		cfg.specPow = 2 / (r * r * r * r)
		if cfg.specPow > 512 {
			cfg.specPow = 512
		}
	}
	if v, ok := s.MaterialValue(material, scene.SpecularAliases); ok && len(v) >= 1 {
		cfg.specInt = float32(v[0])
	}

	for _, l := range s.Lights {
		cfg.lights = append(cfg.lights, pointLight{
			pos:       vec3{float32(l.Position.X), float32(l.Position.Y), float32(l.Position.Z)},
			intensity: float32(l.Energy) * lightScale,
		})
	}
	return cfg
}

// shade computes the linear flat-shade color for a surface point with the
// given unit normal.
func (cfg *shadeConfig) shade(point, normal vec3) [3]float32 {
	diffuse := cfg.ambient
	var specular float32

	viewDir := cfg.viewPos.sub(point).normalize()

	for _, l := range cfg.lights {
		toLight := l.pos.sub(point)
		distSq := toLight.dot(toLight)
		if distSq < 1e-6 {
			continue
		}
		lightDir := toLight.scale(1 / math32.Sqrt(distSq))
		atten := l.intensity / distSq

		n := normal
		ndl := n.dot(lightDir)
		if ndl < 0 {
			// Double-sided: the card is thin and the preview should not
			// depend on which cap faces the camera.
			ndl = -ndl
			n = n.scale(-1)
		}
		diffuse += ndl * atten

		half := lightDir.add(viewDir).normalize()
		ndh := n.dot(half)
		if ndh > 0 {
			specular += math32.Pow(ndh, cfg.specPow) * cfg.specInt * atten
		}
	}

	return [3]float32{
		cfg.base[0]*diffuse + specular,
		cfg.base[1]*diffuse + specular,
		cfg.base[2]*diffuse + specular,
	}
}

// invGamma is the display gamma applied after tone mapping.
const invGamma = 1.0 / 2.2

// tonemap clamps a linear value and applies gamma for display.
func tonemap(linear float32) uint8 {
	if linear <= 0 {
		return 0
	}
	// Reinhard keeps the specular highlight from clipping harshly.
	mapped := linear / (1 + linear)
	out := math32.Pow(mapped, invGamma) * 255
	if out > 255 {
		out = 255
	}
	return uint8(out + 0.5)
}

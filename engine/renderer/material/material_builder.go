package material

import (
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithShaderKey is an option builder that sets the geometry shader variant key.
//
// Parameters:
//   - key: the shader key the material renders with
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shader key option to a material
func WithShaderKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.shaderKey = key
	}
}

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = metallic
	}
}

// WithOpacity is an option builder that sets the opacity of the material.
// Materials with opacity below 1.0 are skipped by the opaque geometry pass.
//
// Parameters:
//   - opacity: the opacity in the [0, 1] range
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = opacity
	}
}

// WithFaceCullMode is an option builder that sets the face culling mode.
//
// Parameters:
//   - cull: the cull mode the material renders with
//
// Returns:
//   - MaterialBuilderOption: a function that applies the cull mode option to a material
func WithFaceCullMode(cull device.CullMode) MaterialBuilderOption {
	return func(m *material) {
		m.cullMode = cull
	}
}

// WithTexture is an option builder that binds a texture to a slot.
//
// Parameters:
//   - slot: the texture slot to bind
//   - tex: the texture to bind at the slot
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(slot TextureSlot, tex *device.Texture) MaterialBuilderOption {
	return func(m *material) {
		if slot < 0 || slot >= SlotCount {
			return
		}
		m.textures[slot] = tex
	}
}

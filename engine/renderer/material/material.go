package material

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// TextureSlot identifies one texture channel of a material. The geometry pass
// binds slots in this order, so the values double as binding indices.
type TextureSlot int

const (
	// SlotAlbedo is the base color texture.
	SlotAlbedo TextureSlot = iota

	// SlotRoughness is the surface roughness texture.
	SlotRoughness

	// SlotMetallic is the metalness texture.
	SlotMetallic

	// SlotOcclusion is the ambient occlusion texture.
	SlotOcclusion

	// SlotNormal is the tangent-space normal map.
	SlotNormal

	// SlotHeight is the height/displacement texture.
	SlotHeight

	// SlotMask is the opacity mask texture.
	SlotMask

	// SlotCount is the number of texture slots a material carries.
	SlotCount
)

var nextMaterialID atomic.Uint64

// material is the implementation of the Material interface.
type material struct {
	id        uint64
	name      string
	shaderKey string

	baseColor [4]float32
	roughness float32
	metallic  float32
	opacity   float32

	cullMode device.CullMode
	textures [SlotCount]*device.Texture
}

// Material defines the interface for a render surface description consumed by
// the geometry pass. Surface properties and texture references are fixed at
// construction; the renderer groups draws first by shader key and then by
// material identity to minimize state changes.
type Material interface {
	// ID retrieves the process-unique identifier of the material, used for
	// draw batching.
	//
	// Returns:
	//   - uint64: the material identifier
	ID() uint64

	// Name retrieves the material identifier string.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// ShaderKey retrieves the key of the geometry shader variant this
	// material renders with.
	//
	// Returns:
	//   - string: the shader key
	ShaderKey() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Opacity retrieves the opacity of the material. The opaque geometry pass
	// skips any material with opacity below 1.0.
	//
	// Returns:
	//   - float32: the opacity in the [0, 1] range
	Opacity() float32

	// FaceCullMode retrieves the face culling mode the material renders with.
	//
	// Returns:
	//   - device.CullMode: the cull mode
	FaceCullMode() device.CullMode

	// Texture retrieves the texture bound at the given slot, or nil if the
	// slot is unset.
	//
	// Parameters:
	//   - slot: the texture slot to query
	//
	// Returns:
	//   - *device.Texture: the texture at the slot, or nil
	Texture(slot TextureSlot) *device.Texture
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		id:        nextMaterialID.Add(1),
		shaderKey: "gbuffer",
		baseColor: [4]float32{1, 1, 1, 1},
		roughness: 1.0,
		metallic:  0.0,
		opacity:   1.0,
		cullMode:  device.CullModeBack,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) ID() uint64 {
	return m.id
}

func (m *material) Name() string {
	return m.name
}

func (m *material) ShaderKey() string {
	return m.shaderKey
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) FaceCullMode() device.CullMode {
	return m.cullMode
}

func (m *material) Texture(slot TextureSlot) *device.Texture {
	if slot < 0 || slot >= SlotCount {
		return nil
	}
	return m.textures[slot]
}

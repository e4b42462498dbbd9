package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights marshaled into the lighting
// pass uniform per frame. The CPU-side light list is unbounded; this cap
// controls only how many lights the GPU evaluates.
const MaxGPULights = 64

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	LightType    uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color        [3]float32 // offset 16: RGB color
	Intensity    float32    // offset 28: scalar multiplier
	Direction    [3]float32 // offset 32: normalized direction (directional/spot) or unused (point)
	LightRange   float32    // offset 44: attenuation cutoff distance
	InnerCone    float32    // offset 48: cos(inner half-angle) for spot
	OuterCone    float32    // offset 52: cos(outer half-angle) for spot
	CastsShadows uint32     // offset 56: 1 = casts shadows, 0 = does not
	_pad         uint32     // offset 60: padding to 64-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.OuterCone))
	binary.LittleEndian.PutUint32(buf[56:60], g.CastsShadows)
	binary.LittleEndian.PutUint32(buf[60:64], 0) // padding
	return buf
}

// GPULightFor builds the GPU representation of a light.
//
// Parameters:
//   - l: the light to describe
//
// Returns:
//   - GPULight: the GPU-aligned light data
func GPULightFor(l Light) GPULight {
	g := GPULight{
		Position:   l.Position(),
		LightType:  uint32(l.Type()),
		Color:      l.Color(),
		Intensity:  l.Intensity(),
		Direction:  l.Direction(),
		LightRange: l.Range(),
		InnerCone:  l.InnerCone(),
		OuterCone:  l.OuterCone(),
	}
	if l.CastsShadows() {
		g.CastsShadows = 1
	}
	return g
}

// GPUShadowCascades is the GPU-aligned representation of the directional
// shadow cascade matrices and split depths consumed by the lighting pass.
// Size: 16 + 192 bytes for three cascades (std430 / WGSL aligned).
type GPUShadowCascades struct {
	Splits       [2]float32                           // offset 0: cascade transition depths as far-plane fractions
	CascadeCount uint32                               // offset 8: number of valid cascades
	_pad         uint32                               // offset 12: padding to 16 bytes
	ViewProj     [DirectionalCascadeCount][16]float32 // offset 16: per-cascade light view-projection matrices
}

// Size returns the size of the GPUShadowCascades struct in bytes.
//
// Returns:
//   - int: the struct size in bytes
func (g *GPUShadowCascades) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUShadowCascades struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUShadowCascades) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Splits[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Splits[1]))
	binary.LittleEndian.PutUint32(buf[8:12], g.CascadeCount)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // padding
	offset := 16
	for c := 0; c < DirectionalCascadeCount; c++ {
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(g.ViewProj[c][i]))
			offset += 4
		}
	}
	return buf
}

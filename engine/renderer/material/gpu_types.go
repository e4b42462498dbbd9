package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned uniform describing a material to the
// geometry pass shader. Size: 32 bytes (two vec4<f32>, std430 aligned).
type GPUMaterialParams struct {
	BaseColor [4]float32 // offset 0: RGBA albedo multiplier (16 bytes)
	Roughness float32    // offset 16: roughness factor (4 bytes)
	Metallic  float32    // offset 20: metallic factor (4 bytes)
	Opacity   float32    // offset 24: opacity, below 1.0 excludes the material from the opaque pass (4 bytes)
	_pad0     float32    // offset 28: std430 padding (4 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.BaseColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.BaseColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.BaseColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.BaseColor[3]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Metallic))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Opacity))
	return buf
}

// ParamsFor builds the GPU uniform for a material.
//
// Parameters:
//   - m: the material to describe
//
// Returns:
//   - GPUMaterialParams: the uniform ready for marshaling
func ParamsFor(m Material) GPUMaterialParams {
	return GPUMaterialParams{
		BaseColor: m.BaseColor(),
		Roughness: m.Roughness(),
		Metallic:  m.Metallic(),
		Opacity:   m.Opacity(),
	}
}

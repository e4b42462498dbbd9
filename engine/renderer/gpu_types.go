package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectTransform is the per-draw transform uniform shared by the depth
// and geometry passes. The geometry pass reads ReceivesShadows into the
// material target's alpha channel so the lighting pass can gate shadow
// sampling per surface. Size: 144 bytes (std430 / WGSL aligned).
type GPUObjectTransform struct {
	WorldViewProjection [16]float32 // offset   0: world * view * projection, column-major
	World               [16]float32 // offset  64: world matrix, column-major
	ReceivesShadows     float32     // offset 128: 1 when shadow maps apply to this surface
	_pad                [3]float32  // offset 132: padding to 144 bytes
}

// Size returns the size of the GPUObjectTransform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUObjectTransform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectTransform struct into a byte buffer
// suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUObjectTransform) Marshal() []byte {
	buf := make([]byte, g.Size())
	offset := 0
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(g.WorldViewProjection[i]))
		offset += 4
	}
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(g.World[i]))
		offset += 4
	}
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(g.ReceivesShadows))
	return buf
}

// GPUFrameParams is the per-frame uniform consumed by the lighting pass.
// QuadTransform is base view times orthographic projection; the vertex stage
// maps the screen-sized quad to clip space with it. Size: 96 bytes (std430 /
// WGSL aligned).
type GPUFrameParams struct {
	QuadTransform  [16]float32 // offset  0: ortho * base view, column-major
	CameraPosition [3]float32  // offset 64: world-space camera position
	LightCount     uint32      // offset 76: number of valid entries in the light buffer
	AmbientColor   [3]float32  // offset 80: RGB ambient term
	_pad           float32     // offset 92: padding to 96 bytes
}

// Size returns the size of the GPUFrameParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUFrameParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameParams struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPUFrameParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.QuadTransform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.CameraPosition[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(g.CameraPosition[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(g.CameraPosition[2]))
	binary.LittleEndian.PutUint32(buf[76:80], g.LightCount)
	binary.LittleEndian.PutUint32(buf[80:84], math.Float32bits(g.AmbientColor[0]))
	binary.LittleEndian.PutUint32(buf[84:88], math.Float32bits(g.AmbientColor[1]))
	binary.LittleEndian.PutUint32(buf[88:92], math.Float32bits(g.AmbientColor[2]))
	binary.LittleEndian.PutUint32(buf[92:96], 0) // padding
	return buf
}

// GPUPostParams is the uniform consumed by the post-process passes.
// Size: 80 bytes (std430 / WGSL aligned).
type GPUPostParams struct {
	QuadTransform [16]float32 // offset  0: ortho * base view, column-major
	TexelSize     [2]float32  // offset 64: 1/width, 1/height of the source texture
	Strength      float32     // offset 72: effect strength, pass-specific meaning
	_pad          float32     // offset 76: padding to 80 bytes
}

// Size returns the size of the GPUPostParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUPostParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPostParams struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUPostParams) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.QuadTransform[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(g.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(g.Strength))
	binary.LittleEndian.PutUint32(buf[76:80], 0) // padding
	return buf
}

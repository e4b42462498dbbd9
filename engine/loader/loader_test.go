package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer packs three vec3 positions followed by three uint16 indices.
func triangleBuffer(t *testing.T) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	positions := [][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	for _, p := range positions {
		require.NoError(t, binary.Write(buf, binary.LittleEndian, p))
	}
	indices := []uint16{0, 1, 2}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, indices))

	return buf.Bytes()
}

func triangleJSON(bufferURI string, byteLength int) string {
	uriField := ""
	if bufferURI != "" {
		uriField = fmt.Sprintf(`"uri": %q,`, bufferURI)
	}

	return fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"nodes": [0]}],
		"nodes": [{"name": "tri", "mesh": 0, "translation": [1, 2, 3]}],
		"meshes": [{
			"name": "triangle",
			"primitives": [{
				"attributes": {"POSITION": 0},
				"indices": 1,
				"material": 0
			}]
		}],
		"materials": [{
			"name": "red",
			"doubleSided": true,
			"pbrMetallicRoughness": {
				"baseColorFactor": [1, 0, 0, 1],
				"metallicFactor": 0.25,
				"roughnessFactor": 0.5
			}
		}],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"buffers": [{%s"byteLength": %d}]
	}`, uriField, byteLength)
}

func writeTriangleGLTF(t *testing.T) string {
	t.Helper()

	raw := triangleBuffer(t)
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(raw)

	path := filepath.Join(t.TempDir(), "triangle.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleJSON(uri, len(raw))), 0o644))
	return path
}

// triangleGLB wraps the triangle document in a GLB container with the buffer
// in the binary chunk.
func triangleGLB(t *testing.T) []byte {
	t.Helper()

	raw := triangleBuffer(t)
	jsonChunk := []byte(triangleJSON("", len(raw)))
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	binChunk := append([]byte{}, raw...)
	for len(binChunk)%4 != 0 {
		binChunk = append(binChunk, 0)
	}

	buf := &bytes.Buffer{}
	totalLength := 12 + 8 + len(jsonChunk) + 8 + len(binChunk)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, gltfGLBHeader{
		Magic:   gltfGLBMagic,
		Version: gltfGLBVersion,
		Length:  uint32(totalLength),
	}))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(jsonChunk)),
		ChunkType:   gltfGLBChunkJSON,
	}))
	buf.Write(jsonChunk)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(binChunk)),
		ChunkType:   gltfGLBChunkBIN,
	}))
	buf.Write(binChunk)

	return buf.Bytes()
}

func TestLoadTriangleFromGLTF(t *testing.T) {
	l := NewLoader(device.NewNullDevice(64, 64))

	objects, err := l.Load(writeTriangleGLTF(t))
	require.NoError(t, err)
	require.Len(t, objects, 1)

	obj := objects[0]
	assert.Equal(t, "tri", obj.Name())
	assert.Equal(t, [3]float32{1, 2, 3}, obj.Position())

	mesh := obj.MeshFilter().Mesh
	require.NotNil(t, mesh)
	require.Len(t, mesh.Vertices(), 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices())
	assert.Equal(t, [3]float32{1, 0, 0}, mesh.Vertices()[1].Position)

	// Normals are derived from the triangle winding when the file has none.
	for _, v := range mesh.Vertices() {
		assert.InDelta(t, 0, v.Normal[0], 1e-6)
		assert.InDelta(t, 0, v.Normal[1], 1e-6)
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}

	mat := obj.MeshRenderer().Material
	require.NotNil(t, mat)
	assert.Equal(t, "red", mat.Name())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, mat.BaseColor())
	assert.InDelta(t, 0.5, mat.Roughness(), 1e-6)
	assert.InDelta(t, 0.25, mat.Metallic(), 1e-6)
	assert.Equal(t, device.CullModeNone, mat.FaceCullMode())
}

func TestLoadCachesByPath(t *testing.T) {
	l := NewLoader(device.NewNullDevice(64, 64))
	path := writeTriangleGLTF(t)

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID(), second[0].ID())
	assert.Equal(t, first, l.Get(path))
}

func TestLoadReaderGLB(t *testing.T) {
	l := NewLoader(device.NewNullDevice(64, 64))

	objects, err := l.LoadReader("triangle", bytes.NewReader(triangleGLB(t)), true)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	mesh := objects[0].MeshFilter().Mesh
	require.NotNil(t, mesh)
	assert.Equal(t, 3, mesh.IndexCount())
	assert.Equal(t, objects, l.Get("triangle"))
}

func TestLoadReaderRejectsBadGLB(t *testing.T) {
	l := NewLoader(device.NewNullDevice(64, 64))

	badMagic := triangleGLB(t)
	binary.LittleEndian.PutUint32(badMagic[:4], 0xDEADBEEF)
	_, err := l.LoadReader("bad_magic", bytes.NewReader(badMagic), true)
	assert.ErrorIs(t, err, errInvalidGLBMagic)

	badVersion := triangleGLB(t)
	binary.LittleEndian.PutUint32(badVersion[4:8], 1)
	_, err = l.LoadReader("bad_version", bytes.NewReader(badVersion), true)
	assert.ErrorIs(t, err, errInvalidGLBVersion)
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	l := NewLoader(device.NewNullDevice(64, 64))

	path := filepath.Join(t.TempDir(), "old.gltf")
	require.NoError(t, os.WriteFile(path, []byte(`{"asset": {"version": "1.0"}}`), 0o644))

	_, err := l.Load(path)
	assert.ErrorIs(t, err, errInvalidGLTFVersion)
}

func TestDataURIDecoding(t *testing.T) {
	data, err := loadDataURI("data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = loadDataURI("data:application/octet-stream;base64")
	assert.ErrorIs(t, err, errInvalidBufferURI)

	_, err = loadDataURI("data:text/plain,hello")
	assert.Error(t, err)
}

func TestDecomposeTransformRoundTrip(t *testing.T) {
	position := [3]float32{4, -2, 7}
	rotation := [3]float32{0.4, -1.1, 0.25}
	scale := [3]float32{2, 3, 0.5}

	var m [16]float32
	common.BuildModelMatrix(m[:],
		position[0], position[1], position[2],
		rotation[0], rotation[1], rotation[2],
		scale[0], scale[1], scale[2])

	gotPosition, gotRotation, gotScale := decomposeTransform(m)

	for i := range 3 {
		assert.InDelta(t, position[i], gotPosition[i], 1e-5)
		assert.InDelta(t, rotation[i], gotRotation[i], 1e-4)
		assert.InDelta(t, scale[i], gotScale[i], 1e-4)
	}
}

func TestQuaternionMatrixMatchesAxisRotation(t *testing.T) {
	// 90 degrees around Y.
	angle := float32(math.Pi / 2)
	q := [4]float32{0, float32(math.Sin(float64(angle / 2))), 0, float32(math.Cos(float64(angle / 2)))}

	m := quaternionMatrix(q)

	// Rotating +X lands on -Z.
	x, y, z := common.TransformPoint(m[:], 1, 0, 0)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, -1, z, 1e-6)
}

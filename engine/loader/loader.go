package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"
	"github.com/Carmen-Shannon/umbra-go/engine/texture"

	"github.com/chewxy/math32"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	dev device.Device

	generateMips bool

	cache map[string][]game_object.GameObject
}

// Loader imports glTF/GLB model files into scene-ready game objects and
// caches the results by name. Imported meshes keep their buffers on the CPU
// until the first draw uploads them.
type Loader interface {
	// Load imports a model file and caches the result by file path.
	// If the path is already cached, the cached objects are returned.
	//
	// Parameters:
	//   - path: the file path to the .gltf or .glb file
	//
	// Returns:
	//   - []game_object.GameObject: one object per mesh primitive in the file
	//   - error: error if parsing or conversion fails
	Load(path string) ([]game_object.GameObject, error)

	// LoadReader imports a model from a reader stream and caches it by the
	// given name. External buffer and image URIs cannot be resolved through a
	// reader, so the stream must be self-contained (GLB or data URIs).
	//
	// Parameters:
	//   - name: the cache key for the imported objects
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []game_object.GameObject: one object per mesh primitive
	//   - error: error if parsing or conversion fails
	LoadReader(name string, r io.Reader, isGLB bool) ([]game_object.GameObject, error)

	// Get retrieves cached objects by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - []game_object.GameObject: the cached objects or nil
	Get(name string) []game_object.GameObject
}

var _ Loader = &loader{}

// NewLoader creates a new Loader that uploads imported textures through the
// given device.
//
// Parameters:
//   - dev: the device used to create GPU textures for imported images
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(dev device.Device, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		dev:          dev,
		generateMips: true,
		cache:        make(map[string][]game_object.GameObject),
	}

	for _, option := range options {
		option(l)
	}

	return l
}

func (l *loader) Load(path string) ([]game_object.GameObject, error) {
	l.mu.RLock()
	if cached, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	p := &gltfParser{}
	if err := p.parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	objects, err := l.convert(p)
	if err != nil {
		return nil, fmt.Errorf("failed to import %q: %w", path, err)
	}

	l.mu.Lock()
	l.cache[path] = objects
	l.mu.Unlock()

	return objects, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) ([]game_object.GameObject, error) {
	l.mu.RLock()
	if cached, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	p := &gltfParser{}
	if err := p.parseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", name, err)
	}

	objects, err := l.convert(p)
	if err != nil {
		return nil, fmt.Errorf("failed to import %q: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = objects
	l.mu.Unlock()

	return objects, nil
}

func (l *loader) Get(name string) []game_object.GameObject {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

// --- Document Conversion ---

// convert walks the document's node hierarchy and produces one game object
// per mesh primitive, with world transforms flattened from the hierarchy.
func (l *loader) convert(p *gltfParser) ([]game_object.GameObject, error) {
	doc := p.document

	meshCache := make(map[int][]importedPrimitive)
	matCache := make(map[int]material.Material)
	imgCache := make(map[string]*device.Texture)

	var defaultMaterial material.Material

	var objects []game_object.GameObject

	var identity [16]float32
	common.Identity(identity[:])

	var walk func(nodeIndex int, parent [16]float32) error
	walk = func(nodeIndex int, parent [16]float32) error {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", nodeIndex)
		}
		node := &doc.Nodes[nodeIndex]

		local := nodeLocalMatrix(node)
		var world [16]float32
		common.Mul4(world[:], parent[:], local[:])

		if node.Mesh != nil {
			prims, err := l.meshPrimitives(p, *node.Mesh, meshCache)
			if err != nil {
				return err
			}

			position, rotation, scale := decomposeTransform(world)

			for i, prim := range prims {
				name := node.Name
				if name == "" {
					name = fmt.Sprintf("node_%d", nodeIndex)
				}
				if len(prims) > 1 {
					name = fmt.Sprintf("%s_%d", name, i)
				}

				mat, err := l.materialFor(p, prim.materialIndex, matCache, imgCache)
				if err != nil {
					return err
				}
				if mat == nil {
					if defaultMaterial == nil {
						defaultMaterial = material.NewMaterial(material.WithName("default"))
					}
					mat = defaultMaterial
				}

				objects = append(objects, game_object.NewGameObject(
					game_object.WithName(name),
					game_object.WithMesh(prim.mesh),
					game_object.WithMaterial(mat),
					game_object.WithPosition(position),
					game_object.WithRotation(rotation),
					game_object.WithScale(scale),
				))
			}
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, identity); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

// rootNodes returns the node indices to walk: the default scene's roots,
// falling back to the first scene, falling back to every parentless node.
func rootNodes(doc *gltfDocument) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	isChild := make(map[int]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			isChild[child] = true
		}
	}

	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// --- Mesh Conversion ---

// importedPrimitive pairs a converted mesh with its source material index.
type importedPrimitive struct {
	mesh          model.Mesh
	materialIndex int
}

func (l *loader) meshPrimitives(p *gltfParser, meshIndex int, cache map[int][]importedPrimitive) ([]importedPrimitive, error) {
	if cached, ok := cache[meshIndex]; ok {
		return cached, nil
	}
	if meshIndex < 0 || meshIndex >= len(p.document.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	src := &p.document.Meshes[meshIndex]

	var prims []importedPrimitive
	for i, prim := range src.Primitives {
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}

		name := src.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", meshIndex)
		}
		if len(src.Primitives) > 1 {
			name = fmt.Sprintf("%s_%d", name, i)
		}

		mesh, err := buildMesh(p, &prim, name)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", name, i, err)
		}

		materialIndex := -1
		if prim.Material != nil {
			materialIndex = *prim.Material
		}

		prims = append(prims, importedPrimitive{mesh: mesh, materialIndex: materialIndex})
	}

	cache[meshIndex] = prims
	return prims, nil
}

func buildMesh(p *gltfParser, prim *gltfPrimitive, name string) (model.Mesh, error) {
	posIndex, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := p.readVec3Accessor(posIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err = p.readVec3Accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err = p.readVec2Accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read texture coordinates: %w", err)
		}
	}

	var tangents [][4]float32
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		tangents, err = p.readVec4Accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read tangents: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = p.readIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if normals == nil {
		normals = computeNormals(positions, indices)
	}

	vertices := make([]model.Vertex, len(positions))
	for i := range positions {
		vertices[i].Position = positions[i]
		if i < len(normals) {
			vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			vertices[i].UV = uvs[i]
		}
		if i < len(tangents) {
			t := tangents[i]
			vertices[i].Tangent = [3]float32{t[0], t[1], t[2]}
		}
	}

	if tangents == nil {
		computeTangents(vertices, indices)
	}

	return model.NewMesh(
		model.WithName(name),
		model.WithVertices(vertices),
		model.WithIndices(indices),
	)
}

// computeNormals accumulates area-weighted face normals per vertex.
func computeNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa, pb, pc := positions[a], positions[b], positions[c]

		e1 := [3]float32{pb[0] - pa[0], pb[1] - pa[1], pb[2] - pa[2]}
		e2 := [3]float32{pc[0] - pa[0], pc[1] - pa[1], pc[2] - pa[2]}

		face := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		for _, idx := range []uint32{a, b, c} {
			normals[idx][0] += face[0]
			normals[idx][1] += face[1]
			normals[idx][2] += face[2]
		}
	}

	for i := range normals {
		n := normals[i]
		length := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length > 0 {
			normals[i] = [3]float32{n[0] / length, n[1] / length, n[2] / length}
		} else {
			normals[i] = [3]float32{0, 1, 0}
		}
	}

	return normals
}

// computeTangents derives per-vertex tangents from the UV gradient across
// each triangle, then orthogonalizes against the vertex normal.
func computeTangents(vertices []model.Vertex, indices []uint32) {
	accum := make([][3]float32, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		va, vb, vc := &vertices[a], &vertices[b], &vertices[c]

		e1 := [3]float32{vb.Position[0] - va.Position[0], vb.Position[1] - va.Position[1], vb.Position[2] - va.Position[2]}
		e2 := [3]float32{vc.Position[0] - va.Position[0], vc.Position[1] - va.Position[1], vc.Position[2] - va.Position[2]}

		du1 := vb.UV[0] - va.UV[0]
		dv1 := vb.UV[1] - va.UV[1]
		du2 := vc.UV[0] - va.UV[0]
		dv2 := vc.UV[1] - va.UV[1]

		det := du1*dv2 - du2*dv1
		if det == 0 {
			continue
		}
		r := 1.0 / det

		tangent := [3]float32{
			(e1[0]*dv2 - e2[0]*dv1) * r,
			(e1[1]*dv2 - e2[1]*dv1) * r,
			(e1[2]*dv2 - e2[2]*dv1) * r,
		}

		for _, idx := range []uint32{a, b, c} {
			accum[idx][0] += tangent[0]
			accum[idx][1] += tangent[1]
			accum[idx][2] += tangent[2]
		}
	}

	for i := range vertices {
		t := accum[i]
		n := vertices[i].Normal

		// Gram-Schmidt against the normal keeps the tangent frame orthogonal.
		dot := t[0]*n[0] + t[1]*n[1] + t[2]*n[2]
		t[0] -= n[0] * dot
		t[1] -= n[1] * dot
		t[2] -= n[2] * dot

		length := math32.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
		if length > 0 {
			vertices[i].Tangent = [3]float32{t[0] / length, t[1] / length, t[2] / length}
		} else {
			vertices[i].Tangent = fallbackTangent(n)
		}
	}
}

// fallbackTangent picks an arbitrary vector perpendicular to the normal for
// vertices with degenerate UVs.
func fallbackTangent(n [3]float32) [3]float32 {
	axis := [3]float32{1, 0, 0}
	if math32.Abs(n[0]) > 0.9 {
		axis = [3]float32{0, 1, 0}
	}

	t := [3]float32{
		n[1]*axis[2] - n[2]*axis[1],
		n[2]*axis[0] - n[0]*axis[2],
		n[0]*axis[1] - n[1]*axis[0],
	}

	length := math32.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	if length == 0 {
		return [3]float32{1, 0, 0}
	}
	return [3]float32{t[0] / length, t[1] / length, t[2] / length}
}

// --- Material Conversion ---

func (l *loader) materialFor(p *gltfParser, materialIndex int, matCache map[int]material.Material, imgCache map[string]*device.Texture) (material.Material, error) {
	if materialIndex < 0 {
		return nil, nil
	}
	if cached, ok := matCache[materialIndex]; ok {
		return cached, nil
	}
	if materialIndex >= len(p.document.Materials) {
		return nil, fmt.Errorf("material index %d out of range", materialIndex)
	}

	src := &p.document.Materials[materialIndex]

	name := src.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", materialIndex)
	}

	options := []material.MaterialBuilderOption{
		material.WithName(name),
	}

	if src.DoubleSided {
		options = append(options, material.WithFaceCullMode(device.CullModeNone))
	}

	baseColor := [4]float32{1, 1, 1, 1}
	metallic := float32(1)
	roughness := float32(1)

	if pbr := src.PbrMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			baseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}

		if pbr.BaseColorTexture != nil {
			tex, err := l.textureFor(p, pbr.BaseColorTexture.Index, channelAll, imgCache)
			if err != nil {
				return nil, fmt.Errorf("material %q base color texture: %w", name, err)
			}
			options = append(options, material.WithTexture(material.SlotAlbedo, tex))
		}

		if pbr.MetallicRoughnessTexture != nil {
			// glTF packs roughness in G and metalness in B of one texture;
			// the geometry pass samples R from separate slots.
			roughTex, err := l.textureFor(p, pbr.MetallicRoughnessTexture.Index, channelGreen, imgCache)
			if err != nil {
				return nil, fmt.Errorf("material %q roughness texture: %w", name, err)
			}
			metalTex, err := l.textureFor(p, pbr.MetallicRoughnessTexture.Index, channelBlue, imgCache)
			if err != nil {
				return nil, fmt.Errorf("material %q metallic texture: %w", name, err)
			}
			options = append(options,
				material.WithTexture(material.SlotRoughness, roughTex),
				material.WithTexture(material.SlotMetallic, metalTex),
			)
		}
	}

	options = append(options,
		material.WithBaseColor(baseColor),
		material.WithRoughness(roughness),
		material.WithMetallic(metallic),
	)

	if src.AlphaMode == "BLEND" {
		options = append(options, material.WithOpacity(baseColor[3]))
	}

	if src.NormalTexture != nil {
		tex, err := l.textureFor(p, src.NormalTexture.Index, channelAll, imgCache)
		if err != nil {
			return nil, fmt.Errorf("material %q normal texture: %w", name, err)
		}
		options = append(options, material.WithTexture(material.SlotNormal, tex))
	}

	if src.OcclusionTexture != nil {
		tex, err := l.textureFor(p, src.OcclusionTexture.Index, channelRed, imgCache)
		if err != nil {
			return nil, fmt.Errorf("material %q occlusion texture: %w", name, err)
		}
		options = append(options, material.WithTexture(material.SlotOcclusion, tex))
	}

	mat := material.NewMaterial(options...)
	matCache[materialIndex] = mat
	return mat, nil
}

// --- Texture Conversion ---

// textureChannel selects which source channel an imported texture replicates.
type textureChannel int

const (
	channelAll textureChannel = iota
	channelRed
	channelGreen
	channelBlue
)

func (l *loader) textureFor(p *gltfParser, textureIndex int, channel textureChannel, imgCache map[string]*device.Texture) (*device.Texture, error) {
	if textureIndex < 0 || textureIndex >= len(p.document.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", textureIndex)
	}

	tex := &p.document.Textures[textureIndex]
	if tex.Source == nil {
		return nil, fmt.Errorf("texture %d has no image source", textureIndex)
	}
	imageIndex := *tex.Source

	key := fmt.Sprintf("%d:%d", imageIndex, channel)
	if cached, ok := imgCache[key]; ok {
		return cached, nil
	}

	img, err := l.decodeImage(p, imageIndex)
	if err != nil {
		return nil, err
	}

	staging := stagingFromImage(img, channel)

	var mips [][]byte
	if l.generateMips {
		mips, err = texture.GenerateMipChain(staging)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", imageIndex, err)
		}
	}

	uploaded, err := l.dev.CreateTexture(staging, mips)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %d: %w", imageIndex, err)
	}

	imgCache[key] = uploaded
	return uploaded, nil
}

// decodeImage resolves an image's bytes from its buffer view or URI and
// decodes them. PNG and JPEG are supported.
func (l *loader) decodeImage(p *gltfParser, imageIndex int) (image.Image, error) {
	if imageIndex < 0 || imageIndex >= len(p.document.Images) {
		return nil, fmt.Errorf("image index %d out of range", imageIndex)
	}

	src := &p.document.Images[imageIndex]

	var data []byte
	switch {
	case src.BufferView != nil:
		bv := &p.document.BufferViews[*src.BufferView]
		buf := &p.document.Buffers[bv.Buffer]
		if bv.ByteOffset+bv.ByteLength > len(buf.Data) {
			return nil, fmt.Errorf("image %d buffer view out of range", imageIndex)
		}
		data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case src.URI != "":
		loaded, err := p.loadBufferURI(src.URI)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", imageIndex, err)
		}
		data = loaded
	default:
		return nil, fmt.Errorf("image %d has no URI or buffer view", imageIndex)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %d: %w", imageIndex, err)
	}

	return img, nil
}

// stagingFromImage converts a decoded image into RGBA staging data,
// optionally replicating one source channel across RGB.
func stagingFromImage(img image.Image, channel textureChannel) common.TextureStagingData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if channel != channelAll {
		offset := 0
		switch channel {
		case channelGreen:
			offset = 1
		case channelBlue:
			offset = 2
		}
		for i := 0; i+3 < len(rgba.Pix); i += 4 {
			v := rgba.Pix[i+offset]
			rgba.Pix[i] = v
			rgba.Pix[i+1] = v
			rgba.Pix[i+2] = v
			rgba.Pix[i+3] = 255
		}
	}

	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}

// --- Transform Conversion ---

// nodeLocalMatrix returns a node's local transform, built from its matrix or
// its translation/rotation/scale properties.
func nodeLocalMatrix(node *gltfNode) [16]float32 {
	if node.Matrix != nil {
		return *node.Matrix
	}

	translation := [3]float32{0, 0, 0}
	rotation := [4]float32{0, 0, 0, 1}
	scale := [3]float32{1, 1, 1}

	if node.Translation != nil {
		translation = *node.Translation
	}
	if node.Rotation != nil {
		rotation = *node.Rotation
	}
	if node.Scale != nil {
		scale = *node.Scale
	}

	m := quaternionMatrix(rotation)
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*4+row] *= scale[col]
		}
	}
	m[12] = translation[0]
	m[13] = translation[1]
	m[14] = translation[2]
	m[15] = 1

	return m
}

// quaternionMatrix converts an (x, y, z, w) unit quaternion to a column-major
// rotation matrix.
func quaternionMatrix(q [4]float32) [16]float32 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	var m [16]float32
	m[0] = 1 - 2*(y*y+z*z)
	m[1] = 2 * (x*y + z*w)
	m[2] = 2 * (x*z - y*w)

	m[4] = 2 * (x*y - z*w)
	m[5] = 1 - 2*(x*x+z*z)
	m[6] = 2 * (y*z + x*w)

	m[8] = 2 * (x*z + y*w)
	m[9] = 2 * (y*z - x*w)
	m[10] = 1 - 2*(x*x+y*y)

	m[15] = 1
	return m
}

// decomposeTransform splits a column-major world matrix into position, Euler
// rotation, and scale. Rotation angles follow the Ry*Rx*Rz order the model
// matrix builder composes with. Negative scale is not recovered.
func decomposeTransform(m [16]float32) (position, rotation, scale [3]float32) {
	position = [3]float32{m[12], m[13], m[14]}

	scale[0] = math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	scale[1] = math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	scale[2] = math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	var r [16]float32
	copy(r[:], m[:])
	for col := 0; col < 3; col++ {
		s := scale[col]
		if s == 0 {
			continue
		}
		r[col*4] /= s
		r[col*4+1] /= s
		r[col*4+2] /= s
	}

	sinPitch := -r[9]
	if sinPitch > 1 {
		sinPitch = 1
	} else if sinPitch < -1 {
		sinPitch = -1
	}
	rotation[0] = math32.Asin(sinPitch)

	if math32.Abs(sinPitch) < 0.9999 {
		rotation[1] = math32.Atan2(r[8], r[10])
		rotation[2] = math32.Atan2(r[1], r[5])
	} else {
		// Gimbal lock: fold roll into yaw.
		rotation[1] = math32.Atan2(-r[2], r[0])
		rotation[2] = 0
	}

	return position, rotation, scale
}

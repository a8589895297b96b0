package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into Mesh format. glTF shares one index
// per corner across positions, normals and UVs, so every Corner produced
// here has Vertex == Texture == Normal.
type GLTFLoader struct {
	// CalculateNormals fills in smooth normals when the file has none.
	CalculateNormals bool
	// Normalize fits the model into the [-1, 1] cube.
	Normalize bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		Normalize:        true,
	}
}

// LoadGLB loads a binary glTF (.glb) or JSON glTF file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a glTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.fromDocument(doc, filepath.Base(path))
}

func (l *GLTFLoader) fromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hasNormals := true
	for _, m := range doc.Meshes {
		if m == nil {
			continue
		}
		n, err := l.processMesh(doc, m, mesh)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		hasNormals = hasNormals && n
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if l.CalculateNormals && !hasNormals {
		mesh.CalculateNormals()
	}
	if l.Normalize {
		mesh.Normalize()
	}

	Logger().Debug("gltf loaded",
		slog.String("name", name),
		slog.Int("vertices", len(mesh.Vertices)),
		slog.Int("faces", len(mesh.Faces)))
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh. It reports
// whether every primitive carried its own normals.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) (bool, error) {
	hasNormals := true
	for i, prim := range m.Primitives {
		if prim == nil {
			continue
		}
		if prim.Mode != gltf.PrimitiveTriangles {
			Logger().Warn("skipping non-triangle primitive",
				slog.String("mesh", m.Name), slog.Int("primitive", i))
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return false, fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3f
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return false, fmt.Errorf("read normals: %w", err)
			}
		} else {
			hasNormals = false
		}

		var uvs []math3d.Vec2f
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return false, fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			mesh.Vertices = append(mesh.Vertices, p)
			var n math3d.Vec3f
			if i < len(normals) {
				n = normals[i]
			}
			mesh.Normals = append(mesh.Normals, n)
			var uv math3d.Vec2f
			if i < len(uvs) {
				// glTF puts V=0 at the top of the image.
				uv = math3d.V2(uvs[i].X, 1-uvs[i].Y)
			}
			mesh.TexCoords = append(mesh.TexCoords, uv)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return false, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var f Face
			for j := range 3 {
				k := base + indices[i+j]
				f[j] = Corner{Vertex: k, Texture: k, Normal: k}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return hasNormals, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3f, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	floats, err := readFloats(doc, accessor, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3f, accessor.Count)
	for i := range result {
		result[i] = math3d.V3(floats[3*i], floats[3*i+1], floats[3*i+2])
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2f, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	floats, err := readFloats(doc, accessor, 2)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2f, accessor.Count)
	for i := range result {
		result[i] = math3d.V2(floats[2*i], floats[2*i+1])
	}
	return result, nil
}

// readFloats reads accessor.Count elements of n float32 components each.
func readFloats(doc *gltf.Document, accessor *gltf.Accessor, n int) ([]float64, error) {
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}
	data, start, stride, err := accessorBytes(doc, accessor, 4*n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, accessor.Count*n)
	for i := range accessor.Count {
		off := start + i*stride
		if off+4*n > len(data) {
			return nil, fmt.Errorf("accessor element %d past end of buffer", i)
		}
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[off+4*j:])
			out[i*n+j] = float64(math.Float32frombits(bits))
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+size > len(data) {
			return nil, fmt.Errorf("index %d past end of buffer", i)
		}
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

func lookupAccessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	if doc.Accessors[idx].Count < 0 {
		return nil, fmt.Errorf("accessor %d has negative count %d", idx, doc.Accessors[idx].Count)
	}
	return doc.Accessors[idx], nil
}

// bufferViewData resolves a buffer view to the buffer it slices. The view's
// byte range is checked against the loaded data.
func bufferViewData(doc *gltf.Document, idx int) (*gltf.BufferView, []byte, error) {
	if idx < 0 || idx >= len(doc.BufferViews) || doc.BufferViews[idx] == nil {
		return nil, nil, fmt.Errorf("buffer view %d out of range (%d views)", idx, len(doc.BufferViews))
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer] == nil {
		return nil, nil, fmt.Errorf("buffer view %d: buffer %d out of range (%d buffers)", idx, bv.Buffer, len(doc.Buffers))
	}
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, nil, fmt.Errorf("buffer %q has no data", buf.URI)
	}
	if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteOffset+bv.ByteLength > len(buf.Data) {
		return nil, nil, fmt.Errorf("buffer view %d: bytes [%d, %d) past end of %d-byte buffer",
			idx, bv.ByteOffset, bv.ByteOffset+bv.ByteLength, len(buf.Data))
	}
	return bv, buf.Data, nil
}

// accessorBytes resolves the buffer behind an accessor, returning the raw
// bytes, the offset of the first element and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView, data, err := bufferViewData(doc, *accessor.BufferView)
	if err != nil {
		return nil, 0, 0, err
	}
	if accessor.ByteOffset < 0 {
		return nil, 0, 0, fmt.Errorf("negative accessor offset %d", accessor.ByteOffset)
	}
	stride := bufferView.ByteStride
	if stride < 0 {
		return nil, 0, 0, fmt.Errorf("negative byte stride %d", stride)
	}
	if stride == 0 {
		stride = elemSize
	}
	return data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// LoadGLBWithTexture loads a glTF file and decodes the first image it
// embeds or references. The texture is nil when the file has none.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := NewGLTFLoader().fromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}

	tex, err := firstImage(doc, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return mesh, tex, nil
}

// firstImage decodes the first usable image of doc. URIs resolve against dir.
func firstImage(doc *gltf.Document, dir string) (image.Image, error) {
	for i, img := range doc.Images {
		if img == nil {
			continue
		}
		var data []byte
		switch {
		case img.BufferView != nil:
			bv, buf, err := bufferViewData(doc, *img.BufferView)
			if err != nil {
				return nil, fmt.Errorf("image %d: %w", i, err)
			}
			data = buf[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		case img.URI != "":
			var err error
			data, err = os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				return nil, fmt.Errorf("read image %d: %w", i, err)
			}
		}
		if len(data) == 0 {
			continue
		}
		tex, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			Logger().Warn("skipping undecodable gltf image", slog.Int("image", i), slog.Any("err", err))
			continue
		}
		return tex, nil
	}
	return nil, nil
}

package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh from path, choosing the format by file extension:
// .obj for Wavefront OBJ, .glb and .gltf for glTF.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("load %s: unsupported model format %q", path, ext)
	}
}

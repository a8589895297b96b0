package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrMalformedFace is wrapped by a ParseError when a face line does not hold
// exactly three vertex/texture/normal groups.
var ErrMalformedFace = errors.New("malformed face")

// ParseError reports a fatal problem on one line of an OBJ file.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadOBJ reads a Wavefront OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads the triangle subset of the Wavefront OBJ format: v, vt, vn
// and f lines whose corners are full v/vt/vn triples. Other statements are
// logged and skipped. Unparsable numbers abort the load.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(s, "v "):
			var v math3d.Vec3f
			v, err = parseVertex(s[2:])
			mesh.Vertices = append(mesh.Vertices, v)
		case strings.HasPrefix(s, "vt"):
			var t math3d.Vec2f
			t, err = parseTexCoord(s[2:])
			mesh.TexCoords = append(mesh.TexCoords, t)
		case strings.HasPrefix(s, "vn"):
			var v math3d.Vec3f
			v, err = parseVertex(s[2:])
			mesh.Normals = append(mesh.Normals, v)
		case strings.HasPrefix(s, "f "):
			var f Face
			f, err = parseFace(s[2:])
			mesh.Faces = append(mesh.Faces, f)
		default:
			Logger().Warn("unsupported obj line", slog.Int("line", n), slog.String("text", s))
		}
		if err != nil {
			return nil, &ParseError{Line: n, Text: s, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	Logger().Debug("obj loaded",
		slog.Int("vertices", len(mesh.Vertices)),
		slog.Int("texcoords", len(mesh.TexCoords)),
		slog.Int("normals", len(mesh.Normals)),
		slog.Int("faces", len(mesh.Faces)))
	return mesh, nil
}

// parseFloats parses the first n whitespace separated fields of s.
func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseVertex parses three floats; an optional w component is ignored.
func parseVertex(s string) (math3d.Vec3f, error) {
	f, err := parseFloats(s, 3)
	if err != nil {
		return math3d.Vec3f{}, err
	}
	return math3d.V3(f[0], f[1], f[2]), nil
}

func parseTexCoord(s string) (math3d.Vec2f, error) {
	f, err := parseFloats(s, 2)
	if err != nil {
		return math3d.Vec2f{}, err
	}
	return math3d.V2(f[0], f[1]), nil
}

// parseFace parses "a/b/c a/b/c a/b/c" into zero-based corners.
func parseFace(s string) (Face, error) {
	var f Face
	groups := strings.Fields(s)
	if len(groups) != 3 {
		return f, fmt.Errorf("%w: want 3 corners, got %d", ErrMalformedFace, len(groups))
	}
	for i, g := range groups {
		parts := strings.Split(g, "/")
		if len(parts) != 3 {
			return f, fmt.Errorf("%w: corner %q is not vertex/texture/normal", ErrMalformedFace, g)
		}
		var idx [3]int
		for j, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil {
				return f, err
			}
			idx[j] = v - 1
		}
		f[i] = Corner{Vertex: idx[0], Texture: idx[1], Normal: idx[2]}
	}
	return f, nil
}

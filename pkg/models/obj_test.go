package models

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

const quadOBJ = `# two triangles
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0

vt 0 0
vt 1 0 0
vt 1 1
vt 0 1

vn 0 0 1
g quad
s 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestParseVertexLine(t *testing.T) {
	s := "v 0.123 0.234 0.345 1.0"
	v, err := parseVertex(s[2:])
	if err != nil {
		t.Fatalf("parseVertex: %v", err)
	}
	if v != math3d.V3(0.123, 0.234, 0.345) {
		t.Errorf("got %v, want (0.123, 0.234, 0.345)", v)
	}
}

func TestParseFaceLine(t *testing.T) {
	s := "f 1193/1240/1193 1180/1227/1180 1179/1226/1179"
	f, err := parseFace(s[2:])
	if err != nil {
		t.Fatalf("parseFace: %v", err)
	}
	want := Face{
		{Vertex: 1192, Texture: 1239, Normal: 1192},
		{Vertex: 1179, Texture: 1226, Normal: 1179},
		{Vertex: 1178, Texture: 1225, Normal: 1178},
	}
	if f != want {
		t.Errorf("got %v, want %v", f, want)
	}
}

func TestParseTexCoordLine(t *testing.T) {
	s := "vt  0.532 0.923 0.000"
	uv, err := parseTexCoord(s[2:])
	if err != nil {
		t.Fatalf("parseTexCoord: %v", err)
	}
	if uv != math3d.V2(0.532, 0.923) {
		t.Errorf("got %v, want (0.532, 0.923)", uv)
	}
}

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got := mesh.VertexCount(); got != 4 {
		t.Errorf("vertices = %d, want 4", got)
	}
	if got := len(mesh.TexCoords); got != 4 {
		t.Errorf("texcoords = %d, want 4", got)
	}
	if got := len(mesh.Normals); got != 1 {
		t.Errorf("normals = %d, want 1", got)
	}
	if got := mesh.TriangleCount(); got != 2 {
		t.Fatalf("faces = %d, want 2", got)
	}
	if got := mesh.FaceVertices(1)[2]; got != math3d.V3(-1.0, 1, 0) {
		t.Errorf("face 1 corner 2 = %v", got)
	}
	if got := mesh.FaceTexCoords(0)[1]; got != math3d.V2(1.0, 0) {
		t.Errorf("face 0 uv 1 = %v", got)
	}
	if got := mesh.FaceNormals(0)[0]; got != math3d.V3(0.0, 0, 1) {
		t.Errorf("face 0 normal = %v", got)
	}
}

func TestParseOBJUnsupportedLinesLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer SetLogger(nil)

	if _, err := ParseOBJ(strings.NewReader(quadOBJ)); err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"line=13", `text="g quad"`, "line=14"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantErr  error
	}{
		{"bad float", "v 1 2 x\n", 1, strconv.ErrSyntax},
		{"short vertex", "v 1 2\n", 1, nil},
		{"bad index", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/a 1/1/1 1/1/1\n", 4, strconv.ErrSyntax},
		{"quad face", "f 1/1/1 2/2/2 3/3/3 4/4/4\n", 1, ErrMalformedFace},
		{"missing slash component", "f 1//1 2//2 3//3\n", 1, strconv.ErrSyntax},
		{"vertex only face", "f 1 2 3\n", 1, ErrMalformedFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", pe.Line, tt.wantLine)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOBJIndexOutOfRange(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n"))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Name != "quad.obj" {
		t.Errorf("name = %q", mesh.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	if _, err := Load("model.stl"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

const asciiQuadPLY = `ply
format ascii 1.0
comment unit square made of one quad
element vertex 4
property float x
property float y
property float z
property float nx
property float ny
property float nz
property float u
property float v
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1 0 0
1 0 0 0 0 1 1 0
1 1 0 0 0 1 1 1
0 1 0 0 0 1 0 1
4 0 1 2 3
`

// binaryTrianglePLY encodes one triangle with an extra per-face uchar property
func binaryTrianglePLY(t *testing.T, format string, order binary.ByteOrder) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("ply\nformat " + format + " 1.0\n")
	buf.WriteString("element vertex 3\nproperty float x\nproperty float y\nproperty float z\n")
	buf.WriteString("element face 1\nproperty list uchar uint vertex_indices\nproperty uchar flags\nend_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}}
	for _, v := range vertices {
		if err := binary.Write(&buf, order, v); err != nil {
			t.Fatalf("Failed to encode vertex: %v", err)
		}
	}
	buf.WriteByte(3)
	if err := binary.Write(&buf, order, [3]uint32{0, 1, 2}); err != nil {
		t.Fatalf("Failed to encode face: %v", err)
	}
	buf.WriteByte(7)
	return buf.Bytes()
}

func TestReadPLY_ASCII(t *testing.T) {
	data, err := ReadPLY(strings.NewReader(asciiQuadPLY))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}

	if len(data.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Unexpected vertex 2: %v", data.Vertices[2])
	}

	// The quad is split into a fan of two triangles
	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected faces %v, got %v", expectedFaces, data.Faces)
	}
	for i := range expectedFaces {
		if data.Faces[i] != expectedFaces[i] {
			t.Fatalf("Expected faces %v, got %v", expectedFaces, data.Faces)
		}
	}

	if len(data.Normals) != 4 || data.Normals[0] != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected per-vertex normals, got %v", data.Normals)
	}
	if len(data.TexCoords) != 4 || data.TexCoords[2] != core.NewVec2(1, 1) {
		t.Errorf("Expected per-vertex texture coordinates, got %v", data.TexCoords)
	}
}

func TestReadPLY_Binary(t *testing.T) {
	tests := []struct {
		format string
		order  binary.ByteOrder
	}{
		{"binary_little_endian", binary.LittleEndian},
		{"binary_big_endian", binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := ReadPLY(bytes.NewReader(binaryTrianglePLY(t, tt.format, tt.order)))
			if err != nil {
				t.Fatalf("ReadPLY failed: %v", err)
			}
			if len(data.Vertices) != 3 || data.Vertices[2] != core.NewVec3(0, 2, 0) {
				t.Errorf("Unexpected vertices %v", data.Vertices)
			}
			if len(data.Faces) != 3 || data.Faces[0] != 0 || data.Faces[1] != 1 || data.Faces[2] != 2 {
				t.Errorf("Unexpected faces %v", data.Faces)
			}
			if data.Normals != nil || data.TexCoords != nil {
				t.Error("Normals and texture coordinates should be absent")
			}
		})
	}
}

func TestReadPLY_SkipsUnknownElements(t *testing.T) {
	input := `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element edge 1
property int vertex1
property int vertex2
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
0 1
3 0 1 2
`
	data, err := ReadPLY(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	if len(data.Faces) != 3 {
		t.Errorf("Expected one triangle, got %v", data.Faces)
	}
}

func TestReadPLY_Errors(t *testing.T) {
	truncated := binaryTrianglePLY(t, "binary_little_endian", binary.LittleEndian)
	truncated = truncated[:len(truncated)-6]

	tests := []struct {
		name  string
		input string
	}{
		{"bad magic", "plx\nformat ascii 1.0\nend_header\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"unterminated header", "ply\nformat ascii 1.0\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nelement vertex 1\nproperty float x\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n0\n"},
		{"no vertices", "ply\nformat ascii 1.0\nelement vertex 0\nproperty float x\nend_header\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 5\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n2 0 1\n"},
		{"short ascii body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
		{"bad ascii number", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\nabc\n"},
		{"truncated binary", string(truncated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPLY(strings.NewReader(tt.input)); !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, []byte(asciiQuadPLY), 0o644); err != nil {
		t.Fatalf("Failed to write PLY: %v", err)
	}

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if len(data.Faces) != 6 {
		t.Errorf("Expected 2 triangles, got %d indices", len(data.Faces))
	}

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

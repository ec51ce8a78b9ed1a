package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrInvalidPLY is wrapped by errors describing malformed PLY input
var ErrInvalidPLY = errors.New("invalid PLY file")

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type for lists
	IsList   bool
	ListType string // Type of the list count
}

// PLYElement is an element declaration ("vertex", "face", ...) with its properties
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYData contains the mesh data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle); polygons are fan-triangulated
	Normals   []core.Vec3 // Per-vertex normals, empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates, empty if not present
}

// LoadPLY loads a PLY file
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses PLY data in ASCII or binary (either byte order) form
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInvalidPLY)
	}
	for _, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: face references vertex %d of %d", ErrInvalidPLY, index, len(data.Vertices))
		}
	}

	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header not terminated: %v", ErrInvalidPLY, err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed format line %q", ErrInvalidPLY, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
	}
	return header, nil
}

// parsePLYProperty parses the words after "property"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if typeSize(prop.ListType) == 0 || typeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unknown type in list property %q", ErrInvalidPLY, prop.Name)
		}
		return prop, nil
	}

	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	if typeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readVertices(values plyValueReader, element PLYElement, data *PLYData) error {
	has := make(map[string]bool, len(element.Properties))
	for _, prop := range element.Properties {
		has[prop.Name] = true
	}
	hasNormals := has["nx"] && has["ny"] && has["nz"]
	hasTexCoords := (has["u"] || has["s"] || has["texture_u"]) && (has["v"] || has["t"] || has["texture_v"])

	data.Vertices = make([]core.Vec3, 0, element.Count)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, element.Count)
	}
	if hasTexCoords {
		data.TexCoords = make([]core.Vec2, 0, element.Count)
	}

	for i := 0; i < element.Count; i++ {
		var position, normal core.Vec3
		var uv core.Vec2

		for _, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			value, err := values.scalar(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			switch prop.Name {
			case "x":
				position.X = value
			case "y":
				position.Y = value
			case "z":
				position.Z = value
			case "nx":
				normal.X = value
			case "ny":
				normal.Y = value
			case "nz":
				normal.Z = value
			case "u", "s", "texture_u":
				uv.X = value
			case "v", "t", "texture_v":
				uv.Y = value
			}
		}

		data.Vertices = append(data.Vertices, position)
		if hasNormals {
			data.Normals = append(data.Normals, normal)
		}
		if hasTexCoords {
			data.TexCoords = append(data.TexCoords, uv)
		}
	}
	return nil
}

func readFaces(values plyValueReader, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, element.Count*3)

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			isIndices := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			if !isIndices {
				if err := skipProperty(values, prop); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := values.scalar(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if count < 3 {
				return fmt.Errorf("%w: face %d has %v vertices", ErrInvalidPLY, i, count)
			}

			indices := make([]int, int(count))
			for j := range indices {
				value, err := values.scalar(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				indices[j] = int(value)
			}

			// Fan triangulation around the first vertex
			for j := 1; j+1 < len(indices); j++ {
				data.Faces = append(data.Faces, indices[0], indices[j], indices[j+1])
			}
		}
	}
	return nil
}

func skipElement(values plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return fmt.Errorf("%s %d: %w", element.Name, i, err)
			}
		}
	}
	return nil
}

func skipProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipList(values plyValueReader, prop PLYProperty) error {
	count, err := values.scalar(prop.ListType)
	if err != nil {
		return err
	}
	for j := 0; j < int(count); j++ {
		if _, err := values.scalar(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// typeSize returns the size in bytes of a PLY data type, or 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyValueReader reads one scalar of the given PLY type from the body
type plyValueReader interface {
	scalar(dataType string) (float64, error)
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) scalar(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q", ErrInvalidPLY, dataType, a.scanner.Text())
	}
	return value, nil
}

type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) scalar(dataType string) (float64, error) {
	size := typeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidPLY, dataType)
	}
	if _, err := io.ReadFull(b.reader, b.buf[:size]); err != nil {
		return 0, fmt.Errorf("%w: unexpected end of data: %v", ErrInvalidPLY, err)
	}
	raw := b.buf[:size]

	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default:
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
)

// plyProperty is a property definition from the PLY header
type plyProperty struct {
	name      string
	dataType  string // scalar type, or the item type of a list
	isList    bool
	countType string // type of the list length prefix
}

// plyElement is an element definition from the PLY header
type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// plyHeader represents the parsed header of a PLY file
type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

// maxPLYListLength bounds list properties such as face vertex indices
const maxPLYListLength = 1 << 16

// plyValueReader reads scalar values from the body of a PLY file
type plyValueReader interface {
	read(dataType string) (float64, error)
}

// LoadPLY loads triangles from a PLY file
func LoadPLY(filename string) ([]*geometry.Triangle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	triangles, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return triangles, nil
}

// ParsePLY reads the "vertex" and "face" elements of an ASCII or binary PLY
// stream. Vertex normals are used when the vertex element declares nx, ny
// and nz. Faces with more than three vertices are split into a triangle fan.
// All other elements and properties are skipped.
func ParsePLY(r io.Reader) ([]*geometry.Triangle, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		values = &plyBinaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.format)
	}

	var (
		vertices   []core.Vec3
		normals    []core.Vec3
		hasNormals bool
		triangles  []*geometry.Triangle
	)

	for _, element := range header.elements {
		switch element.name {
		case "vertex":
			hasNormals = element.hasProperties("nx", "ny", "nz")
			vertices = make([]core.Vec3, 0, element.count)
			if hasNormals {
				normals = make([]core.Vec3, 0, element.count)
			}

			for i := 0; i < element.count; i++ {
				record, err := readPLYRecord(values, element)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				vertices = append(vertices, core.NewVec3(record.scalar("x"), record.scalar("y"), record.scalar("z")))
				if hasNormals {
					normals = append(normals, core.NewVec3(record.scalar("nx"), record.scalar("ny"), record.scalar("nz")))
				}
			}
		case "face":
			for i := 0; i < element.count; i++ {
				record, err := readPLYRecord(values, element)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}

				indices, ok := record.lists["vertex_indices"]
				if !ok {
					indices, ok = record.lists["vertex_index"]
				}
				if !ok {
					return nil, fmt.Errorf("face %d: missing vertex_indices property", i)
				}
				if len(indices) < 3 {
					return nil, fmt.Errorf("face %d: expected at least 3 vertices, got %d", i, len(indices))
				}

				faceVertices := make([]faceVertex, len(indices))
				for j, index := range indices {
					offset := int(index)
					if offset < 0 || offset >= len(vertices) {
						return nil, fmt.Errorf("face %d: vertex index %d out of bounds", i, offset)
					}
					faceVertices[j] = faceVertex{position: vertices[offset]}
					if hasNormals {
						faceVertices[j].normal = normals[offset]
						faceVertices[j].hasNormal = true
					}
				}

				for j := 1; j+1 < len(faceVertices); j++ {
					triangles = append(triangles, newFaceTriangle(faceVertices[0], faceVertices[j], faceVertices[j+1]))
				}
			}
		default:
			for i := 0; i < element.count; i++ {
				if _, err := readPLYRecord(values, element); err != nil {
					return nil, fmt.Errorf("%s %d: %w", element.name, i, err)
				}
			}
		}
	}

	return triangles, nil
}

// parsePLYHeader parses the header lines up to and including end_header,
// leaving the reader positioned at the start of the body
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.format = parts[1]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.elements = append(header.elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("property defined before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.elements[len(header.elements)-1]
			current.props = append(current.props, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword: %s", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop := plyProperty{name: parts[3], dataType: parts[2], isList: true, countType: parts[1]}
		if _, _, ok := plyIntegerRange(prop.countType); !ok || plyTypeSize(prop.dataType) == 0 {
			return plyProperty{}, fmt.Errorf("unsupported list types %s %s", prop.countType, prop.dataType)
		}
		return prop, nil
	}

	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}
	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("unsupported data type: %s", parts[0])
	}
	return plyProperty{name: parts[1], dataType: parts[0]}, nil
}

func (e plyElement) hasProperties(names ...string) bool {
	for _, name := range names {
		found := false
		for _, prop := range e.props {
			if prop.name == name && !prop.isList {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// plyRecord holds the values of one element instance
type plyRecord struct {
	scalars map[string]float64
	lists   map[string][]float64
}

func (r plyRecord) scalar(name string) float64 {
	return r.scalars[name]
}

func readPLYRecord(values plyValueReader, element plyElement) (plyRecord, error) {
	record := plyRecord{scalars: make(map[string]float64, len(element.props))}

	for _, prop := range element.props {
		if !prop.isList {
			v, err := values.read(prop.dataType)
			if err != nil {
				return plyRecord{}, fmt.Errorf("property %s: %w", prop.name, err)
			}
			record.scalars[prop.name] = v
			continue
		}

		n, err := values.read(prop.countType)
		if err != nil {
			return plyRecord{}, fmt.Errorf("property %s: %w", prop.name, err)
		}
		if n < 0 || n > maxPLYListLength || n != math.Trunc(n) {
			return plyRecord{}, fmt.Errorf("property %s: invalid list length %v", prop.name, n)
		}

		items := make([]float64, int(n))
		for i := range items {
			if items[i], err = values.read(prop.dataType); err != nil {
				return plyRecord{}, fmt.Errorf("property %s: %w", prop.name, err)
			}
		}
		if record.lists == nil {
			record.lists = make(map[string][]float64)
		}
		record.lists[prop.name] = items
	}

	return record, nil
}

// plyTypeSize returns the size in bytes of a PLY data type, or 0 if the
// type is unknown
func plyTypeSize(dataType string) int {
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

// plyIntegerRange returns the bounds of an integer PLY type
func plyIntegerRange(dataType string) (float64, float64, bool) {
	switch dataType {
	case "char", "int8":
		return math.MinInt8, math.MaxInt8, true
	case "uchar", "uint8":
		return 0, math.MaxUint8, true
	case "short", "int16":
		return math.MinInt16, math.MaxInt16, true
	case "ushort", "uint16":
		return 0, math.MaxUint16, true
	case "int", "int32":
		return math.MinInt32, math.MaxInt32, true
	case "uint", "uint32":
		return 0, math.MaxUint32, true
	default:
		return 0, 0, false
	}
}

// plyASCIIReader reads whitespace-separated values
type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) read(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, err
	}
	if lo, hi, ok := plyIntegerRange(dataType); ok && (v != math.Trunc(v) || v < lo || v > hi) {
		return 0, fmt.Errorf("value %s out of range for %s", r.scanner.Text(), dataType)
	}
	return v, nil
}

// plyBinaryReader reads fixed-size values in the given byte order
type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *plyBinaryReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}

	b := r.buf[:size]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

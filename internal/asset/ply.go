package asset

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type plyFormat int

const (
	plyASCII plyFormat = iota
	plyBinaryLE
)

type plyProperty struct {
	name     string
	typ      string
	list     bool
	countTyp string
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

// plyPoints holds the vertex element of a PLY file.
type plyPoints struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec3
}

var plySizes = map[string]int{
	"char": 1, "int8": 1, "uchar": 1, "uint8": 1,
	"short": 2, "int16": 2, "ushort": 2, "uint16": 2,
	"int": 4, "int32": 4, "uint": 4, "uint32": 4,
	"float": 4, "float32": 4, "double": 8, "float64": 8,
}

func parsePLYHeader(r *bufio.Reader) (plyFormat, []plyElement, error) {
	var (
		format   plyFormat
		elements []plyElement
	)
	line, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return format, nil, errors.New("missing ply magic")
	}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return format, nil, errors.Wrap(err, "read ply header")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return format, nil, errors.New("malformed ply format line")
			}
			switch fields[1] {
			case "ascii":
				format = plyASCII
			case "binary_little_endian":
				format = plyBinaryLE
			default:
				return format, nil, errors.Errorf("unsupported ply format %s", fields[1])
			}
		case "element":
			if len(fields) != 3 {
				return format, nil, errors.Errorf("malformed ply element line %q", strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return format, nil, errors.Wrapf(err, "ply element %s count", fields[1])
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 {
				return format, nil, errors.New("ply property outside of an element")
			}
			var p plyProperty
			switch {
			case len(fields) == 5 && fields[1] == "list":
				p = plyProperty{name: fields[4], typ: fields[3], list: true, countTyp: fields[2]}
			case len(fields) == 3:
				p = plyProperty{name: fields[2], typ: fields[1]}
			default:
				return format, nil, errors.Errorf("malformed ply property line %q", strings.TrimSpace(line))
			}
			if _, ok := plySizes[p.typ]; !ok {
				return format, nil, errors.Errorf("unknown ply type %s", p.typ)
			}
			if p.list {
				if _, ok := plySizes[p.countTyp]; !ok {
					return format, nil, errors.Errorf("unknown ply type %s", p.countTyp)
				}
			}
			e := &elements[len(elements)-1]
			e.properties = append(e.properties, p)
		case "end_header":
			return format, elements, nil
		}
	}
}

// readPLY reads the x/y/z and, when wantColor is set, red/green/blue properties of
// the vertex element.
func readPLY(rd io.Reader, wantColor bool) (*plyPoints, error) {
	r := bufio.NewReader(rd)
	format, elements, err := parsePLYHeader(r)
	if err != nil {
		return nil, err
	}

	var vertex *plyElement
	for i := range elements {
		if elements[i].name == "vertex" {
			vertex = &elements[i]
			break
		}
	}
	if vertex == nil {
		return nil, errors.New("ply file has no vertex element")
	}
	pos, err := propertyIndices(vertex, "x", "y", "z")
	if err != nil {
		return nil, err
	}
	var col [3]int
	if wantColor {
		if col, err = propertyIndices(vertex, "red", "green", "blue"); err != nil {
			return nil, err
		}
	}

	var read func(e *plyElement) ([]float64, error)
	switch format {
	case plyASCII:
		read = asciiReader(r)
	default:
		read = binaryReader(r)
	}

	points := &plyPoints{}
	for ei := range elements {
		e := &elements[ei]
		for n := 0; n < e.count; n++ {
			values, err := read(e)
			if err != nil {
				return nil, errors.Wrapf(err, "ply %s %d", e.name, n)
			}
			if e != vertex {
				continue
			}
			points.positions = append(points.positions, mgl32.Vec3{
				float32(values[pos[0]]), float32(values[pos[1]]), float32(values[pos[2]]),
			})
			if wantColor {
				var c mgl32.Vec3
				for i, idx := range col {
					c[i] = float32(values[idx])
					if t := e.properties[idx].typ; t == "uchar" || t == "uint8" {
						c[i] /= 255
					}
				}
				points.colors = append(points.colors, c)
			}
		}
		if e == vertex {
			// nothing after the vertex element is needed
			break
		}
	}
	return points, nil
}

func propertyIndices(e *plyElement, names ...string) ([3]int, error) {
	var idx [3]int
	for i, name := range names {
		idx[i] = -1
		for j, p := range e.properties {
			if p.name == name && !p.list {
				idx[i] = j
			}
		}
		if idx[i] < 0 {
			return idx, errors.Errorf("ply vertex element has no %s property", name)
		}
	}
	return idx, nil
}

// asciiReader returns one value per scalar property; list properties are skipped
// and yield zero.
func asciiReader(r *bufio.Reader) func(e *plyElement) ([]float64, error) {
	return func(e *plyElement) ([]float64, error) {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, err
		}
		fields := strings.Fields(line)
		values := make([]float64, len(e.properties))
		at := 0
		for i, p := range e.properties {
			if at >= len(fields) {
				return nil, errors.New("too few values")
			}
			if p.list {
				n, err := strconv.Atoi(fields[at])
				if err != nil {
					return nil, errors.Wrap(err, "list count")
				}
				at += 1 + n
				continue
			}
			v, err := strconv.ParseFloat(fields[at], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "property %s", p.name)
			}
			values[i] = v
			at++
		}
		return values, nil
	}
}

func binaryReader(r *bufio.Reader) func(e *plyElement) ([]float64, error) {
	var buf [8]byte
	scalar := func(typ string) (float64, error) {
		b := buf[:plySizes[typ]]
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, err
		}
		le := binary.LittleEndian
		switch typ {
		case "char", "int8":
			return float64(int8(b[0])), nil
		case "uchar", "uint8":
			return float64(b[0]), nil
		case "short", "int16":
			return float64(int16(le.Uint16(b))), nil
		case "ushort", "uint16":
			return float64(le.Uint16(b)), nil
		case "int", "int32":
			return float64(int32(le.Uint32(b))), nil
		case "uint", "uint32":
			return float64(le.Uint32(b)), nil
		case "float", "float32":
			return float64(math.Float32frombits(le.Uint32(b))), nil
		default:
			return math.Float64frombits(le.Uint64(b)), nil
		}
	}
	return func(e *plyElement) ([]float64, error) {
		values := make([]float64, len(e.properties))
		for i, p := range e.properties {
			if p.list {
				n, err := scalar(p.countTyp)
				if err != nil {
					return nil, err
				}
				for k := 0; k < int(n); k++ {
					if _, err := scalar(p.typ); err != nil {
						return nil, err
					}
				}
				continue
			}
			v, err := scalar(p.typ)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}
}

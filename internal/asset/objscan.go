package asset

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// objVertices are the raw `v` records of an OBJ file, which the face based
// parser does not keep: every position in file order and the optional per
// vertex colors.
type objVertices struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec3 // empty unless every v line carries a color
}

func scanOBJ(r io.Reader) (*objVertices, error) {
	out := &objVertices{}
	colored := true
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(text, "v ") || strings.HasPrefix(text, "v\t") {
			fields := strings.Fields(text)[1:]
			if len(fields) < 3 {
				return nil, errors.Errorf("line %d: vertex needs three coordinates", line)
			}
			values := make([]float32, 0, 6)
			for _, f := range fields {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", line)
				}
				values = append(values, float32(v))
			}
			out.positions = append(out.positions, mgl32.Vec3{values[0], values[1], values[2]})
			if len(values) >= 6 {
				out.colors = append(out.colors, mgl32.Vec3{values[3], values[4], values[5]})
			} else {
				colored = false
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan obj")
	}
	if !colored {
		out.colors = nil
	}
	return out, nil
}

// colorIndex maps each position to the color of its first v line. The face
// parser merges vertices, so positions are the only link back to the v lines.
func (o *objVertices) colorIndex() map[mgl32.Vec3]mgl32.Vec3 {
	if len(o.colors) == 0 {
		return nil
	}
	m := make(map[mgl32.Vec3]mgl32.Vec3, len(o.positions))
	for i, p := range o.positions {
		if _, ok := m[p]; !ok {
			m[p] = o.colors[i]
		}
	}
	return m
}

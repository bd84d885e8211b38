package asset

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/udhos/gwob"
	"go.uber.org/zap"
)

// mtlMaterial is one newmtl block, including the PBR extension keys.
type mtlMaterial struct {
	name string

	ambient, diffuse, specular, transmittance, emission mgl32.Vec3

	shininess, ior, dissolve float32

	roughness, metallic, sheen             float32
	clearcoatThickness, clearcoatRoughness float32
	anisotropy, anisotropyRotation         float32

	// texture file names as written in the library
	maps map[string]string
}

// Texture map keys, named after the material fields they fill.
const (
	mapAmbient           = "map_ambient"
	mapDiffuse           = "map_diffuse"
	mapSpecular          = "map_specular"
	mapSpecularHighlight = "map_specular_highlight"
	mapBump              = "map_bump"
	mapDisplacement      = "map_displacement"
	mapAlbedo            = "map_albedo"
	mapMetallic          = "map_metallic"
	mapRoughness         = "map_roughness"
	mapNormal            = "map_normal"
	mapMetallicRoughness = "map_metallic_roughness"
)

// mtlExtensionMaps are texture keys gwob does not read.
var mtlExtensionMaps = map[string]string{
	"map_ns":   mapSpecularHighlight,
	"map_bump": mapBump,
	"disp":     mapDisplacement,
	"map_pr":   mapRoughness,
	"map_pm":   mapMetallic,
	"norm":     mapNormal,
}

func newMTLMaterial(name string) *mtlMaterial {
	return &mtlMaterial{name: name, shininess: 1, ior: 1, dissolve: 1, maps: make(map[string]string)}
}

// mapFile drops the options (-bm 0.5 and the like) in front of a map's file name.
func mapFile(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// parseMTL reads a material library. gwob parses the standard statements; the
// keys it skips (Tf, Ke, Tr, the PBR extension and a few maps) are read by
// scanMTL. Materials come back in file order.
func parseMTL(src []byte, log *zap.Logger) ([]*mtlMaterial, error) {
	ext, err := scanMTL(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	if len(src) > 0 && src[len(src)-1] != '\n' {
		// gwob fails on any unknown statement on an unterminated last line
		src = append(src[:len(src):len(src)], '\n')
	}
	lib, err := gwob.ReadMaterialLibFromBuf(src, &gwob.ObjParserOptions{
		Logger: func(msg string) { log.Debug("mtl parser", zap.String("msg", msg)) },
	})
	if err != nil {
		return nil, errors.Wrap(err, "read material library")
	}

	materials := make([]*mtlMaterial, 0, len(ext))
	for _, e := range ext {
		m := e.material
		if g, ok := lib.Lib[m.name]; ok {
			m.ambient = mgl32.Vec3(g.Ka)
			m.diffuse = mgl32.Vec3(g.Kd)
			m.specular = mgl32.Vec3(g.Ks)
			if e.seen["Ns"] {
				m.shininess = g.Ns
			}
			if e.seen["Ni"] {
				m.ior = g.Ni
			}
			if e.seen["d"] {
				m.dissolve = g.D
			}
			for key, file := range map[string]string{
				mapAmbient:  g.MapKa,
				mapDiffuse:  g.MapKd,
				mapSpecular: g.MapKs,
				mapBump:     g.Bump,
			} {
				if name := mapFile(file); name != "" {
					m.maps[key] = name
				}
			}
		}
		materials = append(materials, m)
	}
	return materials, nil
}

func loadMTL(path string, log *zap.Logger) ([]*mtlMaterial, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseMTL(src, log)
}

// mtlExtension is what scanMTL collects for one newmtl block.
type mtlExtension struct {
	material *mtlMaterial
	// statements present in the block, as written
	seen map[string]bool
}

func scanMTL(r io.Reader) ([]*mtlExtension, error) {
	var (
		out []*mtlExtension
		cur *mtlExtension
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) == 1 {
				return nil, errors.Errorf("line %d: newmtl without a name", line)
			}
			// gwob keys materials by the rest of the line
			name := strings.TrimSpace(strings.TrimSpace(sc.Text())[len("newmtl"):])
			cur = &mtlExtension{material: newMTLMaterial(name), seen: make(map[string]bool)}
			out = append(out, cur)
			continue
		}
		if cur == nil {
			continue
		}
		cur.seen[fields[0]] = true

		key := strings.ToLower(fields[0])
		args := fields[1:]
		m := cur.material
		if mapKey, ok := mtlExtensionMaps[key]; ok {
			if len(args) > 0 {
				m.maps[mapKey] = args[len(args)-1]
			}
			continue
		}

		var err error
		switch key {
		case "kt", "tf":
			m.transmittance, err = parseVec3(args)
		case "ke":
			m.emission, err = parseVec3(args)
		case "tr":
			if !cur.seen["d"] {
				var tr float32
				tr, err = parseScalar(args)
				m.dissolve = 1 - tr
			}
		case "pr":
			m.roughness, err = parseScalar(args)
		case "pm":
			m.metallic, err = parseScalar(args)
		case "ps":
			m.sheen, err = parseScalar(args)
		case "pc":
			m.clearcoatThickness, err = parseScalar(args)
		case "pcr":
			m.clearcoatRoughness, err = parseScalar(args)
		case "aniso":
			m.anisotropy, err = parseScalar(args)
		case "anisor":
			m.anisotropyRotation, err = parseScalar(args)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: %s", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan mtl")
	}
	return out, nil
}

func parseScalar(args []string) (float32, error) {
	if len(args) == 0 {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	return float32(v), err
}

// parseVec3 accepts one value for a grey color or three for r g b.
func parseVec3(args []string) (mgl32.Vec3, error) {
	var out mgl32.Vec3
	if len(args) == 0 {
		return out, errors.New("missing value")
	}
	for i := 0; i < 3; i++ {
		s := args[0]
		if len(args) >= 3 {
			s = args[i]
		}
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

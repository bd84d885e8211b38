package asset

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/opengl"
)

// Material fields are found through `mtl` struct tags. The value of each tag is
// read from the parsed library entry.
var materialValues = map[string]func(m *mtlMaterial) any{
	"name":                func(m *mtlMaterial) any { return m.name },
	"ambient":             func(m *mtlMaterial) any { return m.ambient },
	"diffuse":             func(m *mtlMaterial) any { return m.diffuse },
	"specular":            func(m *mtlMaterial) any { return m.specular },
	"transmittance":       func(m *mtlMaterial) any { return m.transmittance },
	"emission":            func(m *mtlMaterial) any { return m.emission },
	"shininess":           func(m *mtlMaterial) any { return m.shininess },
	"ior":                 func(m *mtlMaterial) any { return m.ior },
	"dissolve":            func(m *mtlMaterial) any { return m.dissolve },
	"roughness":           func(m *mtlMaterial) any { return m.roughness },
	"metallic":            func(m *mtlMaterial) any { return m.metallic },
	"sheen":               func(m *mtlMaterial) any { return m.sheen },
	"clearcoat_thickness": func(m *mtlMaterial) any { return m.clearcoatThickness },
	"clearcoat_roughness": func(m *mtlMaterial) any { return m.clearcoatRoughness },
	"anisotropy":          func(m *mtlMaterial) any { return m.anisotropy },
	"anisotropy_rotation": func(m *mtlMaterial) any { return m.anisotropyRotation },
}

// textureMaps lists the map tags with the label used in log messages.
var textureMaps = map[string]string{
	mapAmbient:           "ambient map",
	mapDiffuse:           "diffuse map",
	mapSpecular:          "specular map",
	mapSpecularHighlight: "specular highlight map",
	mapBump:              "bump map",
	mapDisplacement:      "displacement map",
	mapAlbedo:            "albedo/diffuse map",
	mapMetallic:          "metallic map",
	mapRoughness:         "roughness map",
	mapNormal:            "normal map",
	mapMetallicRoughness: "metallic roughness map",
}

var textureType = reflect.TypeFor[*opengl.Texture]()

type materialFields[M any] struct {
	index map[string]int
}

func materialFieldsOf[M any]() (*materialFields[M], error) {
	t := reflect.TypeFor[M]()
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("material type %s is not a struct", t)
	}
	f := &materialFields[M]{index: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("mtl")
		if !ok || !sf.IsExported() {
			continue
		}
		var want reflect.Type
		if _, isMap := textureMaps[tag]; isMap {
			want = textureType
		} else if value, known := materialValues[tag]; known {
			want = reflect.TypeOf(value(newMTLMaterial("")))
		} else {
			return nil, errors.Errorf("%s.%s: unknown mtl tag %q", t, sf.Name, tag)
		}
		if !want.ConvertibleTo(sf.Type) {
			return nil, errors.Errorf("%s.%s: %s field must hold a %s", t, sf.Name, tag, want)
		}
		f.index[tag] = i
	}
	return f, nil
}

// empty reports whether M takes nothing from the material library.
func (f *materialFields[M]) empty() bool { return len(f.index) == 0 }

// maps returns the texture tags M asks for.
func (f *materialFields[M]) maps() []string {
	var tags []string
	for tag := range f.index {
		if _, ok := textureMaps[tag]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// fill copies the scalar values of src into m and resolves the texture maps
// through texture.
func (f *materialFields[M]) fill(m *M, src *mtlMaterial, texture func(tag string) *opengl.Texture) {
	v := reflect.ValueOf(m).Elem()
	for tag, i := range f.index {
		field := v.Field(i)
		if _, ok := textureMaps[tag]; ok {
			field.Set(reflect.ValueOf(texture(tag)).Convert(field.Type()))
			continue
		}
		field.Set(reflect.ValueOf(materialValues[tag](src)).Convert(field.Type()))
	}
}

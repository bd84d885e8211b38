package opengl

import (
	"reflect"

	"github.com/pkg/errors"
)

// Mapping selects how attribute data reaches the shader.
type Mapping int

const (
	// MappingCast converts to float without normalization.
	MappingCast Mapping = iota
	// MappingNormalized converts to float and normalizes integer data.
	MappingNormalized
	// MappingPure passes integers and doubles through unconverted.
	MappingPure
)

// Attribute describes one vertex attribute: its component type, component count,
// mapping and byte offset in the vertex.
type Attribute struct {
	Type    Type
	Size    int
	Mapping Mapping
	Offset  int
}

// Layout is the attribute list and stride of a vertex type.
type Layout struct {
	Stride     int
	Attributes []Attribute
}

var scalarTypes = map[reflect.Kind]Type{
	reflect.Int8:    Byte,
	reflect.Uint8:   UnsignedByte,
	reflect.Int16:   Short,
	reflect.Uint16:  UnsignedShort,
	reflect.Int32:   Int,
	reflect.Uint32:  UnsignedInt,
	reflect.Float32: Float,
	reflect.Float64: Double,
}

// LayoutOf derives the vertex layout of T.
//
// Scalars give one attribute of size 1 and arrays (mgl32.Vec3, [4]uint8, ...) one
// attribute of the array length. Structs give one attribute per exported field in
// declaration order; the `gl` field tag selects the mapping ("normalized" or "pure")
// or skips the field ("-"). Nested structs are rejected.
func LayoutOf[T any]() (Layout, error) {
	return layoutOf(reflect.TypeFor[T]())
}

func layoutOf(t reflect.Type) (Layout, error) {
	layout := Layout{Stride: int(t.Size())}
	if t.Kind() != reflect.Struct {
		attr, err := attributeOf(t)
		if err != nil {
			return Layout{}, err
		}
		layout.Attributes = []Attribute{attr}
		return layout, nil
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("gl")
		if tag == "-" {
			continue
		}
		attr, err := attributeOf(f.Type)
		if err != nil {
			return Layout{}, errors.Wrapf(err, "field %s.%s", t.Name(), f.Name)
		}
		switch tag {
		case "":
		case "normalized":
			attr.Mapping = MappingNormalized
		case "pure":
			attr.Mapping = MappingPure
		default:
			return Layout{}, errors.Errorf("field %s.%s: unknown gl tag %q", t.Name(), f.Name, tag)
		}
		attr.Offset = int(f.Offset)
		layout.Attributes = append(layout.Attributes, attr)
	}
	if len(layout.Attributes) == 0 {
		return Layout{}, errors.Errorf("%s has no vertex attributes", t)
	}
	return layout, nil
}

func attributeOf(t reflect.Type) (Attribute, error) {
	if typ, ok := scalarTypes[t.Kind()]; ok {
		return Attribute{Type: typ, Size: 1}, nil
	}
	switch t.Kind() {
	case reflect.Array:
		typ, ok := scalarTypes[t.Elem().Kind()]
		if !ok {
			return Attribute{}, errors.Errorf("unsupported array element %s", t.Elem())
		}
		if t.Len() < 1 || t.Len() > 4 {
			return Attribute{}, errors.Errorf("attribute %s has %d components, want 1 to 4", t, t.Len())
		}
		return Attribute{Type: typ, Size: t.Len()}, nil
	case reflect.Struct:
		return Attribute{}, errors.Errorf("nested struct %s is not a vertex attribute", t)
	}
	return Attribute{}, errors.Errorf("unsupported attribute type %s", t)
}

package asset

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Vertex fields are found through `obj` struct tags.
const (
	fieldPosition = "position"
	fieldNormal   = "normal"
	fieldTexcoord = "texcoord"
	fieldTangent  = "tangent"
	fieldColor    = "color"
)

var vertexFieldTypes = map[string]reflect.Type{
	fieldPosition: reflect.TypeFor[mgl32.Vec3](),
	fieldNormal:   reflect.TypeFor[mgl32.Vec3](),
	fieldTexcoord: reflect.TypeFor[mgl32.Vec2](),
	fieldTangent:  reflect.TypeFor[mgl32.Vec4](),
	fieldColor:    reflect.TypeFor[mgl32.Vec3](),
}

// vertexFields maps the tagged fields of V to their struct indices.
type vertexFields[V any] struct {
	index map[string]int
}

func fieldsOf[V any]() (*vertexFields[V], error) {
	t := reflect.TypeFor[V]()
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("vertex type %s is not a struct", t)
	}
	f := &vertexFields[V]{index: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("obj")
		if !ok || !sf.IsExported() {
			continue
		}
		want, known := vertexFieldTypes[tag]
		if !known {
			return nil, errors.Errorf("%s.%s: unknown obj tag %q", t, sf.Name, tag)
		}
		if !want.ConvertibleTo(sf.Type) {
			return nil, errors.Errorf("%s.%s: %s field must hold a %s", t, sf.Name, tag, want)
		}
		f.index[tag] = i
	}
	if !f.has(fieldPosition) {
		return nil, errors.Errorf("vertex type %s needs a position field", t)
	}
	return f, nil
}

func (f *vertexFields[V]) has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *vertexFields[V]) set(v *V, name string, value any) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	field := reflect.ValueOf(v).Elem().Field(i)
	field.Set(reflect.ValueOf(value).Convert(field.Type()))
}

func (f *vertexFields[V]) get(v *V, name string, out any) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	dst := reflect.ValueOf(out).Elem()
	dst.Set(reflect.ValueOf(v).Elem().Field(i).Convert(dst.Type()))
}

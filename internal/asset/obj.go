package asset

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

// Record is a range of a mesh's index buffer drawn with one material.
type Record[V any] struct {
	Mesh   *Mesh[V]
	Offset int
	Count  int
}

func (r Record[V]) Draw(mode opengl.Primitive) { r.Mesh.DrawRange(r.Offset, r.Count, mode) }

// MaterialGroup is every draw range of a model that uses one material.
type MaterialGroup[V, M any] struct {
	Name     string
	Material M
	Records  []Record[V]
}

func (g *MaterialGroup[V, M]) Draw(mode opengl.Primitive) {
	for _, r := range g.Records {
		r.Draw(mode)
	}
}

// Model is a loaded OBJ file. Meshes are keyed by object name and material groups
// by material name. M may be an empty struct to skip materials.
type Model[V, M any] struct {
	Meshes         map[string]*Mesh[V]
	MaterialGroups map[string]*MaterialGroup[V, M]
}

// Groups returns the material groups ordered by name.
func (m *Model[V, M]) Groups() []*MaterialGroup[V, M] {
	groups := make([]*MaterialGroup[V, M], 0, len(m.MaterialGroups))
	for _, g := range m.MaterialGroups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

// Draw draws every mesh in full.
func (m *Model[V, M]) Draw(mode opengl.Primitive) {
	for _, mesh := range m.Meshes {
		mesh.Draw(mode)
	}
}

func (m *Model[V, M]) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
}

type objLoader[V, M any] struct {
	ctx    *opengl.Context
	path   string
	dir    string
	log    *zap.Logger
	vertex *vertexFields[V]
	mat    *materialFields[M]

	obj    *gwob.Obj
	scan   *objVertices
	colors map[mgl32.Vec3]mgl32.Vec3

	textures map[string]*opengl.Texture
	decoded  map[string]*pixels
	fallback *opengl.Texture
}

// LoadOBJ loads a triangulated OBJ model with its material libraries. The fields
// of V are filled through `obj` tags (position, normal, texcoord, tangent, color)
// and the fields of M through `mtl` tags. Failures are logged and return nil.
func LoadOBJ[V, M any](ctx *opengl.Context, path string) *Model[V, M] {
	log := logger.Log.With(zap.String("path", path))
	vertex, err := fieldsOf[V]()
	if err != nil {
		log.Error("invalid model vertex", zap.Error(err))
		return nil
	}
	mat, err := materialFieldsOf[M]()
	if err != nil {
		log.Error("invalid model material", zap.Error(err))
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Error("cannot find obj file", zap.Error(err))
		return nil
	}

	l := &objLoader[V, M]{
		ctx:      ctx,
		path:     path,
		dir:      filepath.Dir(path),
		log:      log,
		vertex:   vertex,
		mat:      mat,
		textures: make(map[string]*opengl.Texture),
	}
	if err := l.parse(); err != nil {
		log.Error("couldn't parse obj file", zap.Error(err))
		return nil
	}
	return l.build()
}

func (l *objLoader[V, M]) parse() error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer f.Close()
	if l.scan, err = scanOBJ(f); err != nil {
		return err
	}
	l.colors = l.scan.colorIndex()

	l.obj, err = gwob.NewObjFromFile(l.path, &gwob.ObjParserOptions{
		Logger: func(msg string) { l.log.Debug("obj parser", zap.String("msg", msg)) },
	})
	return err
}

func (l *objLoader[V, M]) build() *Model[V, M] {
	model := &Model[V, M]{
		Meshes:         make(map[string]*Mesh[V]),
		MaterialGroups: make(map[string]*MaterialGroup[V, M]),
	}
	if !l.mat.empty() {
		l.loadMaterials(model)
	}
	l.warnMissingData()

	// gwob starts a new group for every usemtl; collect them per object
	var order []string
	groups := make(map[string][]*gwob.Group)
	for _, g := range l.obj.Groups {
		if g.IndexCount == 0 {
			continue
		}
		if _, ok := groups[g.Name]; !ok {
			order = append(order, g.Name)
		}
		groups[g.Name] = append(groups[g.Name], g)
	}
	for _, name := range order {
		l.buildMesh(model, name, groups[name])
	}

	for _, g := range model.Groups() {
		if len(g.Records) == 0 {
			l.log.Warn("dropped unused material", zap.String("material", g.Name))
		}
	}
	return model
}

func (l *objLoader[V, M]) warnMissingData() {
	if l.vertex.has(fieldNormal) && !l.obj.NormCoordFound {
		l.log.Warn("model does not include normals, but they were requested")
	}
	if l.vertex.has(fieldTexcoord) && !l.obj.TextCoordFound {
		l.log.Warn("model does not include texture coordinates, but they were requested")
	}
	if l.vertex.has(fieldColor) && l.colors == nil {
		l.log.Warn("model does not include vertex colors, but they were requested")
	}
	if l.vertex.has(fieldTangent) && !(l.vertex.has(fieldTexcoord) && l.vertex.has(fieldNormal)) {
		l.log.Error("tangent space calculation requires texture coordinates and normals")
	}
}

func (l *objLoader[V, M]) buildMesh(model *Model[V, M], name string, groups []*gwob.Group) {
	n := 0
	for _, g := range groups {
		n += g.IndexCount
	}
	vertices := make([]V, 0, n)
	source := make([]int, 0, n)
	perMaterial := make(map[string][]uint32)

	for _, g := range groups {
		for i := g.IndexBegin; i < g.IndexBegin+g.IndexCount; i++ {
			idx := l.obj.Indices[i]
			perMaterial[g.Usemtl] = append(perMaterial[g.Usemtl], uint32(len(vertices)))
			vertices = append(vertices, l.vertexAt(idx))
			source = append(source, idx)
		}
	}
	if l.vertex.has(fieldTangent) && l.vertex.has(fieldTexcoord) && l.vertex.has(fieldNormal) {
		l.computeTangents(vertices, source)
	}

	var (
		indices []uint32
		ranges  = make(map[string][2]int)
	)
	if l.mat.empty() {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	} else {
		names := make([]string, 0, len(perMaterial))
		for mat := range perMaterial {
			names = append(names, mat)
		}
		sort.Strings(names)
		for _, mat := range names {
			ranges[mat] = [2]int{len(indices), len(perMaterial[mat])}
			indices = append(indices, perMaterial[mat]...)
		}
	}

	mesh := NewMesh(l.ctx, name, vertices, indices)
	model.Meshes[name] = mesh

	for mat, r := range ranges {
		g, ok := model.MaterialGroups[mat]
		if !ok {
			l.log.Warn("unknown material defined for object", zap.String("object", name), zap.String("material", mat))
			continue
		}
		g.Records = append(g.Records, Record[V]{Mesh: mesh, Offset: r[0], Count: r[1]})
	}
}

func (l *objLoader[V, M]) vertexAt(idx int) V {
	var v V
	o := l.obj
	stride := o.StrideSize / 4
	base := idx * stride
	at := func(offset, n int) []float32 {
		start := base + offset/4
		if start+n > len(o.Coord) {
			return nil
		}
		return o.Coord[start : start+n]
	}

	var position mgl32.Vec3
	if p := at(o.StrideOffsetPosition, 3); p != nil {
		position = mgl32.Vec3{p[0], p[1], p[2]}
	}
	l.vertex.set(&v, fieldPosition, position)
	if o.NormCoordFound {
		if n := at(o.StrideOffsetNormal, 3); n != nil {
			l.vertex.set(&v, fieldNormal, mgl32.Vec3{n[0], n[1], n[2]})
		}
	}
	if o.TextCoordFound {
		if t := at(o.StrideOffsetTexture, 2); t != nil {
			l.vertex.set(&v, fieldTexcoord, mgl32.Vec2{t[0], t[1]})
		}
	}
	if c, ok := l.colors[position]; ok {
		l.vertex.set(&v, fieldColor, c)
	}
	return v
}

// computeTangents accumulates the tangent and bitangent of every triangle on its
// source vertices, then orthogonalizes against the normal. The sign in w is the
// handedness of the uv mapping.
func (l *objLoader[V, M]) computeTangents(vertices []V, source []int) {
	const eps = 1e-6
	tangents := make(map[int]mgl32.Vec3)
	bitangents := make(map[int]mgl32.Vec3)

	attr := func(v *V) (p, n mgl32.Vec3, uv mgl32.Vec2) {
		l.vertex.get(v, fieldPosition, &p)
		l.vertex.get(v, fieldNormal, &n)
		l.vertex.get(v, fieldTexcoord, &uv)
		return
	}

	for i := 0; i+2 < len(vertices); i += 3 {
		p1, _, t1 := attr(&vertices[i])
		p2, _, t2 := attr(&vertices[i+1])
		p3, _, t3 := attr(&vertices[i+2])

		e1, e2 := p2.Sub(p1), p3.Sub(p1)
		uv1, uv2 := t2.Sub(t1), t3.Sub(t1)
		if uv1.Len() < 1e-8 {
			uv1[0] = eps
		}
		if uv2.Len() < 1e-8 {
			uv2[1] = eps
		}
		det := uv1[0]*uv2[1] - uv2[0]*uv1[1]
		if math.Abs(float64(det)) < eps {
			det = float32(math.Copysign(eps, float64(det)))
		}
		inv := 1 / det

		tangent := e1.Mul(uv2[1]).Sub(e2.Mul(uv1[1])).Mul(inv)
		bitangent := e2.Mul(uv1[0]).Sub(e1.Mul(uv2[0])).Mul(inv)
		for _, s := range source[i : i+3] {
			tangents[s] = tangents[s].Add(tangent)
			bitangents[s] = bitangents[s].Add(bitangent)
		}
	}

	for i := range vertices {
		_, n, _ := attr(&vertices[i])
		t, b := tangents[source[i]], bitangents[source[i]]
		ortho := t.Sub(n.Mul(t.Dot(n)))
		if ortho.Len() > 1e-12 {
			ortho = ortho.Normalize()
		}
		w := float32(-1)
		if t.Cross(b).Dot(n) > 0 {
			w = 1
		}
		l.vertex.set(&vertices[i], fieldTangent, ortho.Vec4(w))
	}
}

func (l *objLoader[V, M]) loadMaterials(model *Model[V, M]) {
	var materials []*mtlMaterial
	for _, lib := range strings.Fields(l.obj.Mtllib) {
		path := l.resolve(lib)
		parsed, err := loadMTL(path, l.log)
		if err != nil {
			l.log.Error("couldn't read material library", zap.String("library", path), zap.Error(err))
			continue
		}
		materials = append(materials, parsed...)
	}
	if len(materials) == 0 {
		l.log.Error("loaded model does not include material properties")
		return
	}

	l.decodeTextures(materials)
	for _, src := range materials {
		g := &MaterialGroup[V, M]{Name: src.name}
		l.mat.fill(&g.Material, src, func(tag string) *opengl.Texture { return l.mapTexture(src, tag) })
		model.MaterialGroups[src.name] = g
	}
}

func (l *objLoader[V, M]) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, name)
}

// sourceMap is the library entry a texture tag reads from.
func sourceMap(tag string) string {
	if tag == mapAlbedo {
		return mapDiffuse
	}
	return tag
}

// decodeTextures decodes every image the materials reference in parallel. The GL
// upload happens afterwards on the calling goroutine.
func (l *objLoader[V, M]) decodeTextures(materials []*mtlMaterial) {
	want := make(map[string]bool)
	for _, m := range materials {
		for _, tag := range l.mat.maps() {
			if tag == mapMetallicRoughness {
				for _, src := range []string{mapMetallic, mapRoughness} {
					if name := m.maps[src]; name != "" {
						want[l.resolve(name)] = true
					}
				}
				continue
			}
			if name := m.maps[sourceMap(tag)]; name != "" {
				want[l.resolve(name)] = true
			}
		}
	}

	paths := make([]string, 0, len(want))
	for p := range want {
		paths = append(paths, p)
	}
	results := make([]*pixels, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			px, err := decodeTexture(p)
			if err != nil {
				l.log.Error("couldn't load texture", zap.String("texture", p), zap.Error(err))
				return nil
			}
			results[i] = px
			return nil
		})
	}
	_ = g.Wait()

	l.decoded = make(map[string]*pixels, len(paths))
	for i, p := range paths {
		if results[i] != nil {
			l.decoded[p] = results[i]
		}
	}
}

func (l *objLoader[V, M]) defaultTexture() *opengl.Texture {
	if l.fallback == nil {
		l.fallback = TextureColor(l.ctx, 1, 1, Black)
	}
	return l.fallback
}

// texture returns the uploaded texture for a file name, shared within the load.
func (l *objLoader[V, M]) texture(name string) *opengl.Texture {
	path := l.resolve(name)
	if t, ok := l.textures[path]; ok {
		return t
	}
	px, ok := l.decoded[path]
	if !ok {
		return l.defaultTexture()
	}
	t := px.upload(l.ctx)
	l.textures[path] = t
	return t
}

func (l *objLoader[V, M]) mapTexture(m *mtlMaterial, tag string) *opengl.Texture {
	if tag == mapMetallicRoughness {
		return l.metallicRoughness(m)
	}
	name := m.maps[sourceMap(tag)]
	if name == "" {
		l.log.Error("texture map missing for material", zap.String("map", textureMaps[tag]), zap.String("material", m.name))
		l.log.Warn("default texture loaded for material", zap.String("map", textureMaps[tag]), zap.String("material", m.name))
		return l.defaultTexture()
	}
	return l.texture(name)
}

// metallicRoughness merges the metallic and roughness maps into one texture with
// roughness in green and metallic in blue. A single available map is used as is.
func (l *objLoader[V, M]) metallicRoughness(m *mtlMaterial) *opengl.Texture {
	metallic, roughness := m.maps[mapMetallic], m.maps[mapRoughness]
	log := l.log.With(zap.String("material", m.name))
	switch {
	case metallic == "" && roughness == "":
		log.Error("metallic map missing for material")
		log.Error("roughness map missing for material")
		return l.defaultTexture()
	case metallic == "":
		log.Error("metallic map missing for material")
		log.Info("assuming the metallic roughness map is stored in the roughness map")
		return l.texture(roughness)
	case roughness == "":
		log.Error("roughness map missing for material")
		return l.texture(metallic)
	}

	met, okM := l.decoded[l.resolve(metallic)]
	rough, okR := l.decoded[l.resolve(roughness)]
	if !okM || !okR || met.ldr == nil || rough.ldr == nil {
		return l.defaultTexture()
	}
	if met.width != rough.width || met.height != rough.height {
		log.Error("metallic and roughness maps are not of the same dimensions")
		return l.defaultTexture()
	}
	merged := NewImage(met.width, met.height, Black)
	for y := 0; y < met.height; y++ {
		for x := 0; x < met.width; x++ {
			merged.Set(x, y, Color{0, rough.ldr.At(x, y)[0], met.ldr.At(x, y)[0], 255})
		}
	}
	return TextureFromImage(l.ctx, merged)
}

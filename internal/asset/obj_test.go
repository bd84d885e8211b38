package asset

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

type modelVertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
	Tangent  mgl32.Vec4 `obj:"tangent"`
}

type modelMaterial struct {
	Name              string          `mtl:"name"`
	Diffuse           mgl32.Vec3      `mtl:"diffuse"`
	Shininess         float32         `mtl:"shininess"`
	Albedo            *opengl.Texture `mtl:"map_albedo"`
	MetallicRoughness *opengl.Texture `mtl:"map_metallic_roughness"`
}

const quadOBJ = `mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vt 0 0
vt 1 0
vt 0 1
vt 1 1
vn 0 0 1
g quad
usemtl red
f 1/1/1 2/2/1 3/3/1
usemtl blue
f 2/2/1 4/4/1 3/3/1
`

const quadMTL = `# scene
newmtl red
Kd 1 0 0
Ns 32
map_Kd checker.png

newmtl blue
map_Kd checker.png
map_Pm metal.png
map_Pr rough.png

newmtl unused
Kd 0 0 1
`

func writeQuadScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "scene.mtl", quadMTL)
	writePNG(t, dir, "checker.png", [][]color.NRGBA{{red, blue}, {blue, red}})
	writePNG(t, dir, "metal.png", [][]color.NRGBA{{{200, 0, 0, 255}}})
	writePNG(t, dir, "rough.png", [][]color.NRGBA{{{100, 0, 0, 255}}})
	return writeFile(t, dir, "quad.obj", quadOBJ)
}

func TestLoadOBJMaterialGroups(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	model := LoadOBJ[modelVertex, modelMaterial](ctx, writeQuadScene(t))
	require.NotNil(t, model)
	require.Contains(t, model.Meshes, "quad")
	mesh := model.Meshes["quad"]
	assert.Equal(t, 6, mesh.VertexArray.IndexCount())

	groups := model.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"blue", "red", "unused"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})

	blueGroup, redGroup := groups[0], groups[1]
	require.Len(t, blueGroup.Records, 1)
	require.Len(t, redGroup.Records, 1)
	assert.Equal(t, 0, blueGroup.Records[0].Offset)
	assert.Equal(t, 3, blueGroup.Records[0].Count)
	assert.Equal(t, 3, redGroup.Records[0].Offset)
	assert.Empty(t, groups[2].Records)
	assert.Equal(t, 1, logs.FilterMessage("dropped unused material").Len())

	assert.Equal(t, "red", redGroup.Material.Name)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, redGroup.Material.Diffuse)
	assert.Equal(t, float32(32), redGroup.Material.Shininess)
	assert.Equal(t, float32(1), blueGroup.Material.Shininess, "shininess defaults to one")

	d.Reset()
	redGroup.Draw(opengl.Triangles)
	call, ok := d.Last("DrawElements")
	require.True(t, ok)
	assert.Equal(t, int32(3), call.Args[1])
	assert.Equal(t, uintptr(12), call.Args[3])
}

func TestLoadOBJTextures(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	model := LoadOBJ[modelVertex, modelMaterial](ctx, writeQuadScene(t))
	require.NotNil(t, model)
	redMat := model.MaterialGroups["red"].Material
	blueMat := model.MaterialGroups["blue"].Material

	require.NotNil(t, redMat.Albedo)
	assert.Same(t, redMat.Albedo, blueMat.Albedo, "one upload per image file")
	w, h := redMat.Albedo.Size()
	assert.Equal(t, [2]int{2, 2}, [2]int{w, h})

	merged := d.Textures[blueMat.MetallicRoughness.Handle()]
	assert.Equal(t, []byte{0, 100, 200, 255}, merged.Pixels)

	// red has neither map and gets the black default
	assert.Equal(t, []byte{0, 0, 0, 255}, d.Textures[redMat.MetallicRoughness.Handle()].Pixels)
	assert.Equal(t, 2, logs.FilterMessage("metallic map missing for material").Len())
}

func TestLoadOBJVertices(t *testing.T) {
	ctx, d := newTestContext(t)

	model := LoadOBJ[modelVertex, modelMaterial](ctx, writeQuadScene(t))
	require.NotNil(t, model)
	vertices := uploaded(t, d, model.Meshes["quad"].Vertices)
	require.Len(t, vertices, 6)

	for _, v := range vertices {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
		assert.Equal(t, v.Position[0], v.TexCoord[0])
		assert.Equal(t, v.Position[1], v.TexCoord[1])
		assert.InDelta(t, 1, v.Tangent[0], 1e-5)
		assert.InDelta(t, 0, v.Tangent[1], 1e-5)
		assert.InDelta(t, 0, v.Tangent[2], 1e-5)
		assert.Equal(t, float32(1), v.Tangent[3])
	}
}

func TestLoadOBJWithoutMaterials(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	model := LoadOBJ[positionVertex, struct{}](ctx, writeQuadScene(t))
	require.NotNil(t, model)
	assert.Empty(t, model.MaterialGroups)
	assert.Zero(t, logs.FilterMessage("loaded model does not include material properties").Len())

	mesh := model.Meshes["quad"]
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}, d.Buffers[mesh.Indices.Handle()][:12])

	d.Reset()
	model.Draw(opengl.Triangles)
	call, ok := d.Last("DrawElements")
	require.True(t, ok)
	assert.Equal(t, int32(6), call.Args[1])
}

func TestLoadOBJMissingTexture(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "lost.mtl", "newmtl lost\nmap_Kd -bm 0.5 nowhere.png\n")
	path := writeFile(t, dir, "tri.obj", "mtllib lost.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl lost\nf 1 2 3\n")

	model := LoadOBJ[positionVertex, modelMaterial](ctx, path)
	require.NotNil(t, model)
	albedo := model.MaterialGroups["lost"].Material.Albedo
	require.NotNil(t, albedo)
	assert.Equal(t, []byte{0, 0, 0, 255}, d.Textures[albedo.Handle()].Pixels)
	assert.Equal(t, 1, logs.FilterMessage("couldn't load texture").Len())
}

func TestLoadOBJFailures(t *testing.T) {
	logs := observeLogs(t)
	ctx, _ := newTestContext(t)
	dir := t.TempDir()

	assert.Nil(t, LoadOBJ[positionVertex, struct{}](ctx, filepath.Join(dir, "nothing.obj")))
	assert.Equal(t, 1, logs.FilterMessage("cannot find obj file").Len())

	assert.Nil(t, LoadOBJ[struct{ X int }, struct{}](ctx, filepath.Join(dir, "nothing.obj")))
	assert.Equal(t, 1, logs.FilterMessage("invalid model vertex").Len())

	type badMaterial struct {
		Albedo string `mtl:"map_albedo"`
	}
	assert.Nil(t, LoadOBJ[positionVertex, badMaterial](ctx, filepath.Join(dir, "nothing.obj")))
	assert.Equal(t, 1, logs.FilterMessage("invalid model material").Len())

	noLib := writeFile(t, dir, "bare.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	model := LoadOBJ[positionVertex, modelMaterial](ctx, noLib)
	require.NotNil(t, model)
	assert.Equal(t, 1, logs.FilterMessage("loaded model does not include material properties").Len())
}

func TestParseMTL(t *testing.T) {
	src := "newmtl glass\nKd 0.5 0.5 0.5\nKs 0.1 0.2 0.3\nNi 1.5\nTr 0.25\nPr 0.7\nPm 0.1\nKe 1 2 3\n" +
		"map_Kd -s 2 2 1 glass.png\nmap_Bump -bm 2 normal.png\nnorm n2.png\n" +
		"newmtl ghost\nd 0.5\nTr 0.9\n"

	materials, err := parseMTL([]byte(src), logger.Log)
	require.NoError(t, err)
	require.Len(t, materials, 2)

	glass := materials[0]
	assert.Equal(t, "glass", glass.name)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, glass.diffuse)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, glass.specular)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, glass.emission)
	assert.Equal(t, float32(1.5), glass.ior)
	assert.Equal(t, float32(1), glass.shininess, "absent Ns keeps the default")
	assert.Equal(t, float32(0.75), glass.dissolve)
	assert.Equal(t, float32(0.7), glass.roughness)
	assert.Equal(t, "glass.png", glass.maps[mapDiffuse])
	assert.Equal(t, "normal.png", glass.maps[mapBump])
	assert.Equal(t, "n2.png", glass.maps[mapNormal])
	assert.Equal(t, float32(0.5), materials[1].dissolve, "d wins over Tr")
}

func TestParseMTLEdgeCases(t *testing.T) {
	logs := observeLogs(t)

	// no newline after an extension key on the last line
	materials, err := parseMTL([]byte("newmtl y\nKd 1 1 1\nPm 0.3"), logger.Log)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, materials[0].diffuse)
	assert.Equal(t, float32(0.3), materials[0].metallic)

	_, err = parseMTL([]byte("newmtl x\nNs shiny\n"), logger.Log)
	require.NoError(t, err)
	assert.NotZero(t, logs.FilterMessage("mtl parser").Len())

	_, err = parseMTL([]byte("newmtl x\nPr shiny\n"), logger.Log)
	assert.ErrorContains(t, err, "line 2")

	_, err = parseMTL([]byte("newmtl\n"), logger.Log)
	assert.ErrorContains(t, err, "without a name")
}

func TestMaterialFieldsValidation(t *testing.T) {
	_, err := materialFieldsOf[struct {
		Foo float32 `mtl:"foo"`
	}]()
	assert.ErrorContains(t, err, "unknown mtl tag")

	f, err := materialFieldsOf[modelMaterial]()
	require.NoError(t, err)
	assert.False(t, f.empty())
	assert.ElementsMatch(t, []string{mapAlbedo, mapMetallicRoughness}, f.maps())
}

package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
)

const (
	testVert = "#version 330 core\nuniform mat4 mvp;\nvoid main() { gl_Position = mvp * vec4(0); }\n"
	testFrag = "#version 330 core\nout vec4 color;\nvoid main() { color = vec4(1); }\n"
)

func shaderFS() fstest.MapFS {
	return fstest.MapFS{
		"basic.vert":  {Data: []byte(testVert)},
		"basic.frag":  {Data: []byte(testFrag)},
		"other.frag":  {Data: []byte(testFrag)},
		"broken.frag": {Data: []byte("#version 330 core\n#error broken\n")},
	}
}

func TestShaderLibraryLoad(t *testing.T) {
	ctx, d := newTestContext(t)
	lib := NewShaderLibrary(ctx, shaderFS())

	p, err := lib.Load("basic", Vertex("basic.vert"), Fragment("basic.frag"))
	require.NoError(t, err)
	assert.True(t, p.Linked())
	assert.Same(t, p, lib.Program("basic"))
	assert.Nil(t, lib.Program("nope"))
	assert.Equal(t, 2, d.Count("CompileShader"))

	_, err = lib.Load("missing", Vertex("basic.vert"), Fragment("missing.frag"))
	assert.Error(t, err)
	_, err = lib.Load("broken", Vertex("basic.vert"), Fragment("broken.frag"))
	assert.Error(t, err)
	assert.Equal(t, []string{"basic"}, lib.Names())

	require.NoError(t, lib.Close())
	assert.Empty(t, lib.Names())
	assert.Equal(t, 2, d.Count("DeleteProgram"), "the broken program and the stored one")
}

func TestShaderLibraryReloadsChangedPrograms(t *testing.T) {
	logs := observeLogs(t)
	ctx, _ := newTestContext(t)
	fsys := shaderFS()
	lib := NewShaderLibrary(ctx, fsys)
	defer lib.Close()

	basic, err := lib.Load("basic", Vertex("basic.vert"), Fragment("basic.frag"))
	require.NoError(t, err)
	other, err := lib.Load("other", Vertex("basic.vert"), Fragment("other.frag"))
	require.NoError(t, err)
	basicHandle, otherHandle := basic.Handle(), other.Handle()

	assert.Zero(t, lib.Reload())

	lib.markChanged("./other.frag")
	assert.Equal(t, 1, lib.Reload())
	assert.Equal(t, basicHandle, basic.Handle())
	assert.NotEqual(t, otherHandle, other.Handle())
	assert.Same(t, other, lib.Program("other"))

	// a broken edit keeps the running program
	fsys["basic.frag"] = &fstest.MapFile{Data: []byte("#error oops\n")}
	lib.markChanged("basic.frag")
	assert.Zero(t, lib.Reload())
	assert.Equal(t, basicHandle, basic.Handle())
	assert.Equal(t, 1, logs.FilterMessage("shader reload failed").Len())
}

func TestShaderLibraryWatch(t *testing.T) {
	ctx, _ := newTestContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "basic.vert", testVert)
	writeFile(t, dir, "basic.frag", testFrag)

	lib := NewShaderLibrary(ctx, os.DirFS(dir))
	defer lib.Close()
	p, err := lib.Load("basic", Vertex("basic.vert"), Fragment("basic.frag"))
	require.NoError(t, err)
	handle := p.Handle()

	require.NoError(t, lib.Watch(dir))
	assert.Error(t, lib.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic.frag"), []byte(testFrag+"\n"), 0o644))
	require.Eventually(t, func() bool {
		lib.mu.Lock()
		defer lib.mu.Unlock()
		return lib.changed["basic.frag"]
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, lib.Reload())
	assert.NotEqual(t, handle, p.Handle())
}

func TestStageHelpers(t *testing.T) {
	assert.Equal(t, Stage{opengl.VertexShader, "a"}, Vertex("a"))
	assert.Equal(t, Stage{opengl.FragmentShader, "b"}, Fragment("b"))
	assert.Equal(t, Stage{opengl.GeometryShader, "c"}, Geometry("c"))
}

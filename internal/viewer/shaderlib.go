package viewer

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

// Stage names the file holding one shader stage.
type Stage struct {
	Type opengl.ShaderType
	Path string
}

func Vertex(path string) Stage   { return Stage{opengl.VertexShader, path} }
func Fragment(path string) Stage { return Stage{opengl.FragmentShader, path} }
func Geometry(path string) Stage { return Stage{opengl.GeometryShader, path} }

type libraryEntry struct {
	program *opengl.ShaderProgram
	stages  []Stage
}

// ShaderLibrary builds named programs from stage files in a file system and
// rebuilds them when the files change on disk.
type ShaderLibrary struct {
	ctx      *opengl.Context
	fsys     fs.FS
	programs map[string]*libraryEntry

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	changed map[string]bool
}

// NewShaderLibrary reads stage files from fsys, usually an embedded directory.
func NewShaderLibrary(ctx *opengl.Context, fsys fs.FS) *ShaderLibrary {
	return &ShaderLibrary{
		ctx:      ctx,
		fsys:     fsys,
		programs: make(map[string]*libraryEntry),
		changed:  make(map[string]bool),
	}
}

// Load builds and links a program and stores it under name. A program already
// stored under name is replaced.
func (l *ShaderLibrary) Load(name string, stages ...Stage) (*opengl.ShaderProgram, error) {
	sources, err := l.read(stages)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", name)
	}
	if e, ok := l.programs[name]; ok {
		if err := e.program.Rebuild(sources); err != nil {
			return nil, errors.Wrapf(err, "shader %s", name)
		}
		e.stages = stages
		return e.program, nil
	}

	p := l.ctx.NewShader()
	for _, s := range stages {
		if err := p.Attach(sources[s.Type], s.Type); err != nil {
			p.Delete()
			return nil, errors.Wrapf(err, "shader %s", name)
		}
	}
	if err := p.Link(); err != nil {
		p.Delete()
		return nil, errors.Wrapf(err, "shader %s", name)
	}
	l.programs[name] = &libraryEntry{program: p, stages: stages}
	return p, nil
}

func (l *ShaderLibrary) read(stages []Stage) (map[opengl.ShaderType]string, error) {
	sources := make(map[opengl.ShaderType]string, len(stages))
	for _, s := range stages {
		data, err := fs.ReadFile(l.fsys, s.Path)
		if err != nil {
			logger.Log.Error("couldn't open shader file", zap.String("path", s.Path), zap.Error(err))
			return nil, errors.Wrapf(err, "read %s shader", s.Type)
		}
		sources[s.Type] = string(data)
	}
	return sources, nil
}

// Program returns the program stored under name or nil.
func (l *ShaderLibrary) Program(name string) *opengl.ShaderProgram {
	if e, ok := l.programs[name]; ok {
		return e.program
	}
	return nil
}

// Names lists the stored programs in sorted order.
func (l *ShaderLibrary) Names() []string {
	names := make([]string, 0, len(l.programs))
	for name := range l.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Watch reports changes of the files in dir, which must be the directory fsys
// reads from. Changed programs are rebuilt by the next Reload.
func (l *ShaderLibrary) Watch(dir string) error {
	if l.watcher != nil {
		return errors.New("shader library is already watching")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create shader watcher")
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return errors.Wrapf(err, "watch %s", dir)
	}
	l.watcher = w
	l.done = make(chan struct{})
	logger.Log.Info("watching shaders", zap.String("dir", dir))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					rel, err := filepath.Rel(dir, ev.Name)
					if err != nil {
						continue
					}
					l.markChanged(filepath.ToSlash(rel))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Log.Warn("shader watcher", zap.Error(err))
			case <-l.done:
				return
			}
		}
	}()
	return nil
}

func (l *ShaderLibrary) markChanged(file string) {
	l.mu.Lock()
	l.changed[path.Clean(file)] = true
	l.mu.Unlock()
}

// Reload rebuilds every program with a changed stage file. It must run on the
// thread owning the GL context. Programs that fail to build keep their previous
// version. It returns the number of rebuilt programs.
func (l *ShaderLibrary) Reload() int {
	l.mu.Lock()
	if len(l.changed) == 0 {
		l.mu.Unlock()
		return 0
	}
	changed := l.changed
	l.changed = make(map[string]bool)
	l.mu.Unlock()

	rebuilt := 0
	for _, name := range l.Names() {
		e := l.programs[name]
		if !e.uses(changed) {
			continue
		}
		sources, err := l.read(e.stages)
		if err == nil {
			err = e.program.Rebuild(sources)
		}
		if err != nil {
			logger.Log.Error("shader reload failed", zap.String("program", name), zap.Error(err))
			continue
		}
		logger.Log.Info("shader reloaded", zap.String("program", name))
		rebuilt++
	}
	return rebuilt
}

func (e *libraryEntry) uses(changed map[string]bool) bool {
	for _, s := range e.stages {
		if changed[path.Clean(s.Path)] {
			return true
		}
	}
	return false
}

// Close stops watching and deletes every program.
func (l *ShaderLibrary) Close() error {
	var err error
	if l.watcher != nil {
		close(l.done)
		err = l.watcher.Close()
		l.wg.Wait()
		l.watcher = nil
	}
	for name, e := range l.programs {
		e.program.Delete()
		delete(l.programs, name)
	}
	return err
}

package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/darkharvest/engine/world"
)

// Option configures a load.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger that receives content warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) *options {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads all .lua files from dir on disk.
func Load(dir string, opts ...Option) (*world.Adventure, error) {
	return LoadFS(os.DirFS(dir), ".", opts...)
}

// LoadPath loads an adventure from a Lua directory, a single .lua file or
// a .yaml/.yml file.
func LoadPath(p string, opts ...Option) (*world.Adventure, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("opening adventure %s: %w", p, err)
	}
	if info.IsDir() {
		return Load(p, opts...)
	}

	dir, name := filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadYAMLFS(fsys, name, opts...)
	case ".lua":
		return loadLua(fsys, []string{name}, newOptions(opts))
	}
	return nil, fmt.Errorf("adventure %s: unsupported file type %q", p, filepath.Ext(name))
}

// LoadFS reads all .lua files in dir of fsys, compiles them into a room
// graph, validates it, and returns the adventure. The Lua VM is discarded
// after loading.
func LoadFS(fsys fs.FS, dir string, opts ...Option) (*world.Adventure, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading adventure directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	luaFiles = sortedLuaFiles(luaFiles)
	for i, f := range luaFiles {
		luaFiles[i] = path.Join(dir, f)
	}
	return loadLua(fsys, luaFiles, newOptions(opts))
}

func loadLua(fsys fs.FS, files []string, o *options) (*world.Adventure, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(bytes.NewReader(src), path.Base(f))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	ve := &ValidationError{}
	return build(coll.raw(ve), ve, o)
}

// build compiles and validates a decoded adventure.
func build(raw *rawAdventure, ve *ValidationError, o *options) (*world.Adventure, error) {
	adv, rooms := compile(raw, ve)
	if err := validate(adv, rooms, ve, o.log); err != nil {
		return nil, err
	}
	o.log.Debug("adventure loaded", "title", adv.Title, "rooms", len(rooms))
	return adv, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the content directory or the
// VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}

package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peachworld/server/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game
// loop). It drives the player in headless runs through next_input(ctx).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// A missing directory leaves the engine empty.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile runs one script file in the engine's VM.
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadString runs a chunk of Lua source.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

var inputKeys = map[string]world.Key{
	"left":  world.KeyLeft,
	"right": world.KeyRight,
	"up":    world.KeyUp,
	"space": world.KeySpace,
}

// NextKey calls the Lua next_input function with a snapshot of the player
// and maps its string result to a key. nil, an unknown name or any Lua
// error yield no key for the tick.
func (e *Engine) NextKey(tick uint64, p *world.Player) (world.Key, bool) {
	fn := e.vm.GetGlobal("next_input")
	if fn == lua.LNil {
		return world.KeyNone, false
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("tick", lua.LNumber(tick))
	ctx.RawSetString("x", lua.LNumber(p.X))
	ctx.RawSetString("y", lua.LNumber(p.Y))
	ctx.RawSetString("dir", lua.LNumber(p.Dir))
	ctx.RawSetString("jumping", lua.LBool(p.Jumping()))
	ctx.RawSetString("star_power", lua.LBool(p.StarPower()))
	ctx.RawSetString("shoot_power", lua.LBool(p.ShootPower()))
	ctx.RawSetString("jump_power", lua.LBool(p.JumpPower()))
	ctx.RawSetString("invulnerable", lua.LBool(p.Invulnerable()))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua next_input error", zap.Uint64("tick", tick), zap.Error(err))
		return world.KeyNone, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	name, ok := result.(lua.LString)
	if !ok {
		return world.KeyNone, false
	}
	key, ok := inputKeys[string(name)]
	if !ok {
		e.log.Warn("lua next_input returned unknown key", zap.String("key", string(name)))
		return world.KeyNone, false
	}
	return key, true
}

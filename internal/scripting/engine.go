package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay rule evaluation.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// script directories loaded in order; missing ones are skipped
var scriptDirs = []string{"core", "combat"}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range scriptDirs {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
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
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HitKind names the source of a hit.
type HitKind string

const (
	HitProjectile HitKind = "projectile"
	HitContact    HitKind = "contact"
)

// HitContext holds pre-packed data for one damage application.
type HitContext struct {
	Kind           HitKind
	BaseDamage     float64
	TargetHealth   float64
	TargetMax      float64
	TickRate       float64 // seconds per tick
	TargetIsPlayer bool
}

// CalcHit calls the Lua calc_hit function and returns the damage to apply
// this tick. Falls back to BaseDamage when the script is missing or fails.
func (e *Engine) CalcHit(ctx HitContext) float64 {
	fn := e.vm.GetGlobal("calc_hit")
	if fn == lua.LNil {
		e.log.Error("lua function calc_hit not found")
		return ctx.BaseDamage
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("base_damage", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("tick_rate", lua.LNumber(ctx.TickRate))

	tgt := e.vm.NewTable()
	tgt.RawSetString("health", lua.LNumber(ctx.TargetHealth))
	tgt.RawSetString("max_health", lua.LNumber(ctx.TargetMax))
	tgt.RawSetString("is_player", lua.LBool(ctx.TargetIsPlayer))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_hit error", zap.Error(err))
		return ctx.BaseDamage
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_hit returned non-number", zap.String("type", result.Type().String()))
		return ctx.BaseDamage
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

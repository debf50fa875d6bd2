// Package script provides a Lua-backed alternative to ai.DefaultScorer:
// one scoring function per personality, loaded from a directory of
// .lua files so scenario authors can tune AI behavior without a
// recompile.
//
// Grounded on rdtc8822-debug-L1JGO-Whale's internal/scripting.Engine —
// same single-VM, load-directory-of-.lua-files-at-startup,
// pack-args-into-a-table-then-CallByParam shape — adapted from its
// fixed combat-formula entry points (calc_melee_attack, ...) to one
// entry point per AIPersonality, and from zap to this repo's logrus
// logger.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"github.com/sirupsen/logrus"

	"github.com/pfassina/grimdark/internal/domain"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only —
// the simulation is itself single-threaded (spec §5), so this mirrors
// that constraint rather than adding its own locking.
type Engine struct {
	vm  *lua.LState
	log *logrus.Entry
}

// NewEngine loads every .lua file directly under scriptsDir. A missing
// directory is not an error — callers fall back to ai.DefaultScorer
// when no script defines a given personality's function.
func NewEngine(scriptsDir string, log *logrus.Entry) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load ai scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) Close() { e.vm.Close() }

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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
		e.log.WithField("file", path).Debug("loaded ai script")
	}
	return nil
}

// functionName maps a personality to the Lua global it expects, e.g.
// score_aggressive(ctx) -> number.
func functionName(p domain.AIPersonality) string {
	return "score_" + toSnake(p)
}

func toSnake(p domain.AIPersonality) string {
	switch p {
	case domain.AIDefensive:
		return "defensive"
	case domain.AIOpportunistic:
		return "opportunistic"
	case domain.AIBalanced:
		return "balanced"
	default:
		return "aggressive"
	}
}

// CandidateContext is the pre-packed data a score_* function receives,
// mirroring the attacker/target table shape of the engine.CombatContext
// this is grounded on.
type CandidateContext struct {
	ActionCategory string // "attack", "move", "wait"
	DamageMin      int
	DamageMax      int
	WillKill       bool
	CounterDamage  int
	CounterWillKill bool
	MoraleState    string
	TargetMemoryMatch bool
}

// HasFunction reports whether a score_<personality> global is defined.
func (e *Engine) HasFunction(p domain.AIPersonality) bool {
	return e.vm.GetGlobal(functionName(p)) != lua.LNil
}

// Score calls score_<personality>(ctx) and returns its numeric result.
// HasFunction should be checked first; calling Score when the function
// isn't defined returns 0.
func (e *Engine) Score(p domain.AIPersonality, ctx CandidateContext) float64 {
	fn := e.vm.GetGlobal(functionName(p))
	if fn == lua.LNil {
		return 0
	}

	t := e.vm.NewTable()
	t.RawSetString("action_category", lua.LString(ctx.ActionCategory))
	t.RawSetString("damage_min", lua.LNumber(ctx.DamageMin))
	t.RawSetString("damage_max", lua.LNumber(ctx.DamageMax))
	t.RawSetString("will_kill", lua.LBool(ctx.WillKill))
	t.RawSetString("counter_damage", lua.LNumber(ctx.CounterDamage))
	t.RawSetString("counter_will_kill", lua.LBool(ctx.CounterWillKill))
	t.RawSetString("morale_state", lua.LString(ctx.MoraleState))
	t.RawSetString("target_memory_match", lua.LBool(ctx.TargetMemoryMatch))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		e.log.WithError(err).WithField("personality", p.String()).Error("ai script error")
		return 0
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return float64(lua.LVAsNumber(result))
}

// Package objective evaluates battle win/loss predicates (spec §4.9):
// a closed set of victory/defeat conditions, each subscribed to the
// event kinds that can make it true rather than polled every tick.
//
// Grounded on suderio-ancient-draconic's internal/rules.Registry: a
// thin cel.Env wrapper exposing a handful of named variables and an
// Eval(expression, context) entry point. Here every predicate compiles
// its own fixed expression from its parameters rather than accepting
// author-supplied CEL text, since spec §4.9's predicate set is closed —
// CEL is the evaluation engine, not a scenario-authoring surface.
package objective

import (
	"github.com/google/cel-go/cel"
)

// Registry owns one compiled CEL environment shared by every Objective.
type Registry struct {
	env *cel.Env
}

// NewRegistry builds the CEL environment with the variables every
// predicate expression may reference. Unused variables in a given
// expression are simply absent from that call's context map.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("now", cel.IntType),
		cel.Variable("target_tick", cel.IntType),
		cel.Variable("alive_enemies", cel.IntType),
		cel.Variable("alive_players", cel.IntType),
		cel.Variable("unit_alive", cel.BoolType),
		cel.Variable("captured", cel.BoolType),
		cel.Variable("unit_pos", cel.MapType(cel.StringType, cel.IntType)),
		cel.Variable("target_pos", cel.MapType(cel.StringType, cel.IntType)),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Eval compiles and runs expr against ctx, returning its boolean result.
func (r *Registry) Eval(expr string, ctx map[string]any) (bool, error) {
	ast, iss := r.env.Compile(expr)
	if iss.Err() != nil {
		return false, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return false, err
	}
	out, _, err := prog.Eval(ctx)
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	return ok && b, nil
}

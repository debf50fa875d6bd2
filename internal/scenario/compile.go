package scenario

import (
	"fmt"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/objective"
)

// CompileObjectives turns a ScenarioPlan's YAML-authored
// ObjectiveSpec into the closed-set objective.Objective instances
// spec §4.9 evaluates, resolving each predicate's unit_name/marker
// parameters against the battle-init-time lookups the engine already
// built (EntityID allocation and marker resolution both happen before
// this is called).
func CompileObjectives(spec ObjectiveSpec, unitIDs map[string]domain.EntityID, markers map[string]domain.Vector2) ([]*objective.Objective, error) {
	out := make([]*objective.Objective, 0, len(spec.Victory)+len(spec.Defeat))

	for _, p := range spec.Victory {
		obj, err := compilePredicate(objective.BucketVictory, p, unitIDs, markers)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	for _, p := range spec.Defeat {
		obj, err := compilePredicate(objective.BucketDefeat, p, unitIDs, markers)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func compilePredicate(bucket objective.Bucket, p PredicateSpec, unitIDs map[string]domain.EntityID, markers map[string]domain.Vector2) (*objective.Objective, error) {
	name := p.Name
	if name == "" {
		name = p.Kind
	}

	var obj *objective.Objective
	switch p.Kind {
	case "defeat_all_enemies":
		obj = objective.NewDefeatAllEnemies(name)

	case "all_units_defeated":
		obj = objective.NewAllUnitsDefeated(name)

	case "survive_turns":
		tick, err := paramInt(p.Params, "target_tick")
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewSurviveTurns(name, domain.Tick(tick))

	case "turn_limit":
		tick, err := paramInt(p.Params, "turn_limit_tick")
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewTurnLimit(name, domain.Tick(tick))

	case "reach_position":
		id, err := resolveUnit(p.Params, unitIDs)
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		pos, err := resolvePosition(p.Params, markers)
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewReachPosition(name, id, pos)

	case "defeat_unit":
		id, err := resolveUnit(p.Params, unitIDs)
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewDefeatUnit(name, id)

	case "protect_unit":
		id, err := resolveUnit(p.Params, unitIDs)
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewProtectUnit(name, id)

	case "position_captured":
		pos, err := resolvePosition(p.Params, markers)
		if err != nil {
			return nil, fmt.Errorf("scenario: predicate %q: %w", name, err)
		}
		obj = objective.NewPositionCaptured(name, pos)

	default:
		return nil, fmt.Errorf("scenario: predicate %q: unknown kind %q", name, p.Kind)
	}

	obj.Bucket = bucket
	return obj, nil
}

func resolveUnit(params map[string]any, unitIDs map[string]domain.EntityID) (domain.EntityID, error) {
	name, err := paramString(params, "unit_name")
	if err != nil {
		return domain.NilEntityID, err
	}
	id, ok := unitIDs[name]
	if !ok {
		return domain.NilEntityID, fmt.Errorf("unknown unit_name %q", name)
	}
	return id, nil
}

func resolvePosition(params map[string]any, markers map[string]domain.Vector2) (domain.Vector2, error) {
	if raw, ok := params["position"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return domain.Vector2{}, fmt.Errorf("param %q: expected {x, y}", "position")
		}
		x, err := paramInt(m, "x")
		if err != nil {
			return domain.Vector2{}, err
		}
		y, err := paramInt(m, "y")
		if err != nil {
			return domain.Vector2{}, err
		}
		return domain.Vector2{X: x, Y: y}, nil
	}
	if name, err := paramString(params, "marker"); err == nil {
		pos, ok := markers[name]
		if !ok {
			return domain.Vector2{}, fmt.Errorf("unknown marker %q", name)
		}
		return pos, nil
	}
	return domain.Vector2{}, fmt.Errorf("expected a %q or %q param", "position", "marker")
}

func paramInt(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing param %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("param %q has unexpected type %T", key, v)
	}
}

func paramString(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing param %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %q has unexpected type %T", key, v)
	}
	return s, nil
}

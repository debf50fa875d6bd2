package ai

import (
	"github.com/pfassina/grimdark/internal/ai/script"
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
)

// ScriptScorer delegates to a Lua score_<personality> function when
// one is defined, falling back to DefaultScorer otherwise — so a
// scenario can override one personality's curve without having to
// author all four.
type ScriptScorer struct {
	Engine   *script.Engine
	Fallback Scorer
}

func NewScriptScorer(engine *script.Engine) ScriptScorer {
	return ScriptScorer{Engine: engine, Fallback: DefaultScorer{}}
}

func (s ScriptScorer) Score(unit *domain.Entity, cand Candidate, state State, calc *combat.Calculator) float64 {
	personality := domain.AIBalanced
	if unit.AI != nil {
		personality = unit.AI.Personality
	}
	if s.Engine == nil || !s.Engine.HasFunction(personality) {
		return s.Fallback.Score(unit, cand, state, calc)
	}

	ctx := script.CandidateContext{MoraleState: moraleStateName(unit)}
	switch cand.Action {
	case domain.ActionWait:
		ctx.ActionCategory = "wait"
	case domain.ActionMove:
		ctx.ActionCategory = "move"
	default:
		ctx.ActionCategory = "attack"
		defender, ok := state.Entity(cand.Target.Entity)
		if !ok {
			return s.Fallback.Score(unit, cand, state, calc)
		}
		f := calc.Forecast(unit, defender, calc.DamageFactor(cand.Action), 0)
		ctx.DamageMin, ctx.DamageMax, ctx.WillKill = f.DamageMin, f.DamageMax, f.WillKill
		if f.CounterForecast != nil {
			ctx.CounterDamage = f.CounterForecast.DamageMax
			ctx.CounterWillKill = f.CounterForecast.WillKill
		}
		if unit.AI != nil {
			ctx.TargetMemoryMatch = unit.AI.TargetMemory == defender.ID
		}
	}

	return s.Engine.Score(personality, ctx)
}

func moraleStateName(unit *domain.Entity) string {
	if unit.Morale == nil {
		return domain.MoraleNormal.String()
	}
	return unit.Morale.State.String()
}

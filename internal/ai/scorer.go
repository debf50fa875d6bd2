package ai

import (
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
)

// DefaultScorer implements spec §4.10's four personality biases
// (aggressive: damage dealt; defensive: survival; opportunistic: kill
// shots; balanced: blended) plus the supplemented morale hook: a
// unit's own Morale.State shifts its effective aggression the way
// morale_manager.py's panic/rally states push NPC behavior in the
// source this spec was distilled from.
type DefaultScorer struct{}

func (DefaultScorer) Score(unit *domain.Entity, cand Candidate, state State, calc *combat.Calculator) float64 {
	personality := domain.AIBalanced
	if unit.AI != nil {
		personality = unit.AI.Personality
	}

	switch cand.Action {
	case domain.ActionWait:
		return 0

	case domain.ActionMove:
		return 1 // any progress beats standing still when nothing else validates

	case domain.ActionStandardAttack, domain.ActionQuickStrike, domain.ActionPowerAttack:
		defender, ok := state.Entity(cand.Target.Entity)
		if !ok {
			return negInf
		}
		factor := calc.DamageFactor(cand.Action)
		terrainPenalty := 0
		f := calc.Forecast(unit, defender, factor, terrainPenalty)

		score := float64(f.DamageMin+f.DamageMax) / 2
		if f.WillKill {
			score += killShotBonus
		}
		if f.CounterPossible && f.CounterForecast != nil {
			counterRisk := float64(f.CounterForecast.DamageMin+f.CounterForecast.DamageMax) / 2
			score -= counterRisk * survivalWeight(personality)
			if f.CounterForecast.WillKill {
				score -= lethalCounterPenalty * survivalWeight(personality)
			}
		}

		switch personality {
		case domain.AIAggressive:
			score *= 1.5
		case domain.AIOpportunistic:
			if f.WillKill {
				score *= 2.0
			}
			if unit.AI != nil && unit.AI.TargetMemory == defender.ID {
				score += rememberedTargetBonus
			}
		case domain.AIDefensive:
			score *= 0.75
		}

		score *= moraleMultiplier(unit)
		return score
	}

	return negInf
}

const (
	killShotBonus         = 25.0
	lethalCounterPenalty  = 40.0
	rememberedTargetBonus = 10.0
)

func survivalWeight(p domain.AIPersonality) float64 {
	if p == domain.AIDefensive {
		return 2.0
	}
	return 1.0
}

// moraleMultiplier implements the supplemented feature: panicked/routed
// units favor disengagement (attacks scored down), heroic/confident
// units press the advantage (attacks scored up).
func moraleMultiplier(unit *domain.Entity) float64 {
	if unit.Morale == nil {
		return 1.0
	}
	switch unit.Morale.State {
	case domain.MoralePanicked, domain.MoraleRouted:
		return 0.4
	case domain.MoraleShaken:
		return 0.8
	case domain.MoraleHeroic, domain.MoraleConfident:
		return 1.3
	default:
		return 1.0
	}
}

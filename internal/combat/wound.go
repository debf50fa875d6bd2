package combat

import (
	"math/rand"

	"github.com/pfassina/grimdark/internal/domain"
)

// bodyPartDistribution is the fixed distribution spec §4.3 calls for
// when drawing which body part a wound lands on: torso is the largest
// target, head the rarest.
var bodyPartDistribution = []struct {
	part   domain.BodyPart
	weight int
}{
	{domain.BodyPartTorso, 50},
	{domain.BodyPartArm, 20},
	{domain.BodyPartLeg, 20},
	{domain.BodyPartHead, 10},
}

func rollBodyPart(rng *rand.Rand) domain.BodyPart {
	total := 0
	for _, b := range bodyPartDistribution {
		total += b.weight
	}
	roll := rng.Intn(total)
	for _, b := range bodyPartDistribution {
		if roll < b.weight {
			return b.part
		}
		roll -= b.weight
	}
	return domain.BodyPartTorso
}

// severityForRatio maps damage-to-hpMax ratio to a WoundSeverity band.
// Below the spec's default wound threshold (0.3) no wound is created
// at all — see MakeWound's caller.
func severityForRatio(ratio float64) domain.WoundSeverity {
	switch {
	case ratio >= 0.75:
		return domain.WoundMortal
	case ratio >= 0.5:
		return domain.WoundSevere
	case ratio >= 0.3:
		return domain.WoundModerate
	default:
		return domain.WoundMinor
	}
}

// MakeWound builds a Wound proportional to damage/hpMax, per spec
// §4.3's wound-factory contract. Callers are expected to have already
// checked damage against domain.WoundDamageThresholdFraction.
func MakeWound(rng *rand.Rand, damage, hpMax int, atTick domain.Tick, inflictedBy domain.EntityID) domain.Wound {
	ratio := float64(damage) / float64(hpMax)
	severity := severityForRatio(ratio)
	bodyPart := rollBodyPart(rng)

	w := domain.Wound{
		Severity:      severity,
		BodyPart:      bodyPart,
		InflictedTick: atTick,
		InflictedBy:   inflictedBy,
		Bleeding:      severity >= domain.WoundSevere,
		Permanent:     severity == domain.WoundMortal,
	}

	penalty := -5
	switch severity {
	case domain.WoundSevere:
		penalty = -10
	case domain.WoundMortal:
		penalty = -20
	}
	stat := "defense"
	if bodyPart == domain.BodyPartArm {
		stat = "strength"
	} else if bodyPart == domain.BodyPartLeg {
		stat = "speed"
	}
	w.StatPenalties = []domain.Modifier{{Source: "wound", Stat: stat, Delta: penalty}}

	return w
}

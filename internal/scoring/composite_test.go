package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeAttackScenario(t *testing.T) {
	// Margin +500 lots, attack volume above both moving averages.
	margin := MarginFlow{Trend: MarginIncreased, Delta: 500}
	tech := TechnicalSnapshot{
		OK:        true,
		PriceUp:   true,
		VolUp:     true,
		Trend:     true,
		BiasPct:   5,
		Character: VolumeAttack,
		Score:     4, // +2 attack, +1 above ma5, +1 above ma20
	}
	trap := DetectTrap(margin.Delta, tech)

	rec := Compose("2330", "台積電", margin, tech, trap)

	assert.Equal(t, TrapNone, rec.Trap)
	assert.Equal(t, 5.0, rec.Score) // 4 + 1 margin bonus
	assert.Equal(t, 500, rec.MarginDeltaLots)
	assert.True(t, rec.Trend)
}

func TestComposeFallingKnifeScenario(t *testing.T) {
	// Margin +300, panic selling below both moving averages: the trap fires.
	margin := MarginFlow{Trend: MarginIncreased, Delta: 300}
	tech := TechnicalSnapshot{
		OK:        true,
		PriceUp:   false,
		VolUp:     true,
		Character: VolumePanic,
		Score:     -2,
	}
	trap := DetectTrap(margin.Delta, tech)

	rec := Compose("2603", "長榮", margin, tech, trap)

	assert.Equal(t, TrapFallingKnife, rec.Trap)
	assert.Equal(t, -4.0, rec.Score) // -2 panic, -3 trap, +1 margin
}

func TestComposeNeutralWithoutSeries(t *testing.T) {
	margin := MarginFlow{Trend: MarginIncreased, Delta: 120}
	tech := EvaluateTechnical(nil)
	trap := DetectTrap(margin.Delta, tech)

	rec := Compose("9999", "無資料", margin, tech, trap)

	assert.Equal(t, 1.0, rec.Score) // only the margin bonus applies
	assert.Equal(t, VolumeFlat, rec.Character)
	assert.Equal(t, TrapNone, rec.Trap)
	assert.Equal(t, 0, rec.BiasPct)
	assert.False(t, rec.Trend)
}

func TestComposeDeltaTruncation(t *testing.T) {
	margin := MarginFlow{Trend: MarginIncreased, Delta: 499.9}
	rec := Compose("1101", "台泥", margin, TechnicalSnapshot{}, TrapNone)
	assert.Equal(t, 499, rec.MarginDeltaLots)
}

func TestComposeScoreMonotonicity(t *testing.T) {
	tech := TechnicalSnapshot{OK: true, Character: VolumeWashout, Score: 1}

	unknown := Compose("2330", "x", MarginFlow{Trend: MarginUnknown}, tech, TrapNone)
	increased := Compose("2330", "x", MarginFlow{Trend: MarginIncreased, Delta: 1}, tech, TrapNone)
	assert.Equal(t, unknown.Score+1, increased.Score)

	panicTech := TechnicalSnapshot{OK: true, Character: VolumePanic, Score: VolumePanic.ScoreDelta()}
	attackTech := TechnicalSnapshot{OK: true, Character: VolumeAttack, Score: VolumeAttack.ScoreDelta()}
	down := Compose("2330", "x", MarginFlow{}, panicTech, TrapNone)
	up := Compose("2330", "x", MarginFlow{}, attackTech, TrapNone)
	assert.Equal(t, down.Score+4, up.Score) // panic -> attack is a +4 swing
}

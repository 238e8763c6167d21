package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeSeries builds a chronological series from parallel close/volume slices.
func makeSeries(closes, volumes []float64) Series {
	s := make(Series, len(closes))
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		s[i] = Observation{
			Date:   base.AddDate(0, 0, i),
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return s
}

// flatSeries returns n sessions at the given close and volume.
func flatSeries(n int, close, volume float64) (closes, volumes []float64) {
	closes = make([]float64, n)
	volumes = make([]float64, n)
	for i := range closes {
		closes[i] = close
		volumes[i] = volume
	}
	return closes, volumes
}

func TestEvaluateTechnicalShortSeries(t *testing.T) {
	closes, volumes := flatSeries(10, 100, 1500)
	snap := EvaluateTechnical(makeSeries(closes, volumes))

	assert.False(t, snap.OK)
	assert.False(t, snap.Trend)
	assert.Equal(t, 0, snap.BiasPct)
	assert.Equal(t, VolumeFlat, snap.Character)
	assert.Equal(t, 0.0, snap.Score)
}

func TestEvaluateTechnicalNilSeries(t *testing.T) {
	snap := EvaluateTechnical(nil)
	assert.False(t, snap.OK)
	assert.Equal(t, VolumeFlat, snap.Character)
}

func TestEvaluateTechnicalAttackVolume(t *testing.T) {
	// Price rises 100 -> 105 on volume 2000 vs a 1500 five-session average,
	// closing above both moving averages.
	closes, volumes := flatSeries(20, 100, 1500)
	closes[19] = 105
	volumes[16] = 1000
	volumes[19] = 2000 // tail volumes: 1500,1000,1500,1500,2000 -> mean 1500

	snap := EvaluateTechnical(makeSeries(closes, volumes))
	require.True(t, snap.OK)

	assert.True(t, snap.PriceUp)
	assert.True(t, snap.VolUp)
	assert.Equal(t, VolumeAttack, snap.Character)
	assert.True(t, snap.Trend)
	assert.InDelta(t, 101.0, snap.MA5, 1e-9)
	assert.InDelta(t, 100.25, snap.MA20, 1e-9)
	assert.Equal(t, 5, snap.BiasPct) // (105-100.25)/100.25 ~ 4.74% -> 5
	assert.Equal(t, 4.0, snap.Score) // +2 attack, +1 above ma5, +1 above ma20
}

func TestEvaluateTechnicalPanicSelling(t *testing.T) {
	// Price falls 105 -> 100 on expanded volume, below both moving averages.
	closes, volumes := flatSeries(20, 105, 1500)
	closes[19] = 100
	volumes[16] = 1000
	volumes[19] = 2000

	snap := EvaluateTechnical(makeSeries(closes, volumes))
	require.True(t, snap.OK)

	assert.False(t, snap.PriceUp)
	assert.True(t, snap.VolUp)
	assert.Equal(t, VolumePanic, snap.Character)
	assert.False(t, snap.Trend)
	assert.Equal(t, -2.0, snap.Score)
}

func TestEvaluateTechnicalShrinkingRally(t *testing.T) {
	// Price up but volume stays at its average: the fractional +0.5 bonus.
	closes, volumes := flatSeries(20, 100, 1500)
	closes[19] = 105

	snap := EvaluateTechnical(makeSeries(closes, volumes))
	require.True(t, snap.OK)

	assert.Equal(t, VolumeShrink, snap.Character)
	assert.Equal(t, 2.5, snap.Score) // +0.5 shrink rally, +1, +1
}

func TestEvaluateTechnicalWashout(t *testing.T) {
	closes, volumes := flatSeries(20, 105, 1500)
	closes[19] = 100
	volumes[19] = 800

	snap := EvaluateTechnical(makeSeries(closes, volumes))
	require.True(t, snap.OK)

	assert.Equal(t, VolumeWashout, snap.Character)
	assert.Equal(t, 1.0, snap.Score) // +1 washout, below both MAs
}

func TestVolumeExpansionThreshold(t *testing.T) {
	// Exactly 10% above the average is not expansion; it must exceed it.
	closes, volumes := flatSeries(20, 100, 1000)
	closes[19] = 101
	// tail: 1000,1000,1000,1000,1100 -> mean 1020, threshold 1122
	volumes[19] = 1100

	snap := EvaluateTechnical(makeSeries(closes, volumes))
	assert.False(t, snap.VolUp)
}

func TestClassifyVolumeExhaustive(t *testing.T) {
	tests := []struct {
		priceUp bool
		volUp   bool
		want    VolumeCharacter
	}{
		{true, true, VolumeAttack},
		{false, true, VolumePanic},
		{true, false, VolumeShrink},
		{false, false, VolumeWashout},
	}

	seen := map[VolumeCharacter]bool{}
	for _, tt := range tests {
		got := classifyVolume(tt.priceUp, tt.volUp)
		assert.Equal(t, tt.want, got)
		assert.False(t, seen[got], "category %v produced twice", got)
		seen[got] = true
	}
	assert.Len(t, seen, 4)
}

func TestVolumeCharacterDisplay(t *testing.T) {
	assert.Equal(t, "🔥攻擊買量", VolumeAttack.Display())
	assert.Equal(t, "🚨恐慌賣壓", VolumePanic.Display())
	assert.Equal(t, "⚠️量縮價漲", VolumeShrink.Display())
	assert.Equal(t, "💎縮量洗盤", VolumeWashout.Display())
	assert.Equal(t, "量平", VolumeFlat.Display())
}

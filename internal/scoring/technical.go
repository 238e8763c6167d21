package scoring

import "math"

// VolumeCharacter classifies the latest session's volume against its price
// direction. The four tradeable categories are mutually exclusive and
// exhaustive over (priceUp, volUp); VolumeFlat is the neutral default when no
// usable series exists.
type VolumeCharacter int

const (
	VolumeFlat    VolumeCharacter = iota // 量平 (no data)
	VolumeAttack                         // 攻擊買量: price up on expanding volume
	VolumePanic                          // 恐慌賣壓: price down on expanding volume
	VolumeShrink                         // 量縮價漲: price up on shrinking volume
	VolumeWashout                        // 縮量洗盤: price down on shrinking volume
)

// String returns an ASCII name for logs.
func (c VolumeCharacter) String() string {
	switch c {
	case VolumeAttack:
		return "attack"
	case VolumePanic:
		return "panic"
	case VolumeShrink:
		return "shrink-rally"
	case VolumeWashout:
		return "washout"
	default:
		return "flat"
	}
}

// Display returns the table label. 量能本質
func (c VolumeCharacter) Display() string {
	switch c {
	case VolumeAttack:
		return "🔥攻擊買量"
	case VolumePanic:
		return "🚨恐慌賣壓"
	case VolumeShrink:
		return "⚠️量縮價漲"
	case VolumeWashout:
		return "💎縮量洗盤"
	default:
		return "量平"
	}
}

// ScoreDelta is the category's contribution to the composite score. The
// fractional +0.5 for VolumeShrink is intentional; rounding it would reorder
// securities with close scores.
func (c VolumeCharacter) ScoreDelta() float64 {
	switch c {
	case VolumeAttack:
		return 2
	case VolumePanic:
		return -2
	case VolumeShrink:
		return 0.5
	case VolumeWashout:
		return 1
	default:
		return 0
	}
}

// classifyVolume maps the session's two booleans onto a category.
func classifyVolume(priceUp, volUp bool) VolumeCharacter {
	switch {
	case priceUp && volUp:
		return VolumeAttack
	case !priceUp && volUp:
		return VolumePanic
	case priceUp && !volUp:
		return VolumeShrink
	default:
		return VolumeWashout
	}
}

// volumeExpansion is how far above its 5-session average the latest volume
// must be before it counts as expanding. The 10% margin is a deliberate noise
// filter.
const volumeExpansion = 1.1

// TechnicalSnapshot holds everything the technical evaluator derived for one
// security. When OK is false the series was missing or too short and every
// field carries its neutral default.
type TechnicalSnapshot struct {
	OK bool

	MA5    float64
	MA20   float64
	VolMA5 float64

	BiasPct int // (close-ma20)/ma20, percent, rounded

	PriceUp bool
	VolUp   bool

	Character VolumeCharacter
	Trend     bool // close > ma5 > ma20, strict uptrend alignment

	// Score is the accumulated technical contribution: the volume-character
	// delta plus +1 for close above ma5 and +1 for close above ma20.
	Score float64
}

// EvaluateTechnical computes moving averages, bias and the volume-character
// classification from a chronological close/volume series. Fewer than 20
// observations yields the neutral snapshot (trend false, bias 0%, VolumeFlat,
// zero score).
func EvaluateTechnical(series Series) TechnicalSnapshot {
	if !series.HasEnoughData() {
		return TechnicalSnapshot{Character: VolumeFlat}
	}

	curr := series[len(series)-1]
	prev := series[len(series)-2]

	ma5 := series.tailMeanClose(5)
	ma20 := series.tailMeanClose(20)
	volMA5 := series.tailMeanVolume(5)

	bias := (curr.Close - ma20) / ma20 * 100

	snap := TechnicalSnapshot{
		OK:      true,
		MA5:     ma5,
		MA20:    ma20,
		VolMA5:  volMA5,
		BiasPct: int(math.Round(bias)),
		PriceUp: curr.Close > prev.Close,
		VolUp:   curr.Volume > volMA5*volumeExpansion,
		Trend:   curr.Close > ma5 && ma5 > ma20,
	}

	snap.Character = classifyVolume(snap.PriceUp, snap.VolUp)
	snap.Score = snap.Character.ScoreDelta()

	if curr.Close > ma5 {
		snap.Score++
	}
	if curr.Close > ma20 {
		snap.Score++
	}

	return snap
}

package scoring

// ScoreRecord is the per-security output of a scan: the chip and technical
// labels resolved to their final display state plus the composite score.
// Records are created once and never mutated; the scanner orders them by
// Score descending.
type ScoreRecord struct {
	Code string
	Name string

	MarginTrend     MarginTrend
	MarginDeltaLots int // truncated, in lots (張)

	Trend   bool
	BiasPct int

	Character VolumeCharacter
	Trap      TrapStatus

	Score float64
}

// marginBonus is the composite bonus for an increased financing balance.
const marginBonus = 1

// Compose folds the three evaluators into the final record. The inputs must
// have been produced in order (margin flow, then technical snapshot, then
// trap) because the trap detector consumes both earlier results.
func Compose(code, name string, margin MarginFlow, tech TechnicalSnapshot, trap TrapStatus) ScoreRecord {
	score := tech.Score + trap.ScoreDelta()
	if margin.Trend == MarginIncreased {
		score += marginBonus
	}

	return ScoreRecord{
		Code:            code,
		Name:            name,
		MarginTrend:     margin.Trend,
		MarginDeltaLots: int(margin.Delta),
		Trend:           tech.Trend,
		BiasPct:         tech.BiasPct,
		Character:       tech.Character,
		Trap:            trap,
		Score:           score,
	}
}

package scoring

// TrapStatus flags the adversarial chip pattern: financing balance grew while
// price fell on above-average volume. Retail traders adding leveraged
// exposure into a high-volume decline usually means institutions are
// distributing into them. 散戶接刀
type TrapStatus int

const (
	TrapNone TrapStatus = iota
	TrapFallingKnife
)

// String returns an ASCII name for logs.
func (t TrapStatus) String() string {
	if t == TrapFallingKnife {
		return "falling-knife"
	}
	return "none"
}

// Display returns the table label. 籌碼警示
func (t TrapStatus) Display() string {
	if t == TrapFallingKnife {
		return "💀散戶接刀"
	}
	return "正常"
}

// ScoreDelta is the trap's contribution to the composite score.
func (t TrapStatus) ScoreDelta() float64 {
	if t == TrapFallingKnife {
		return -3
	}
	return 0
}

// DetectTrap evaluates the falling-knife condition against the margin delta
// and the SAME price/volume booleans the technical evaluator derived; the
// booleans are never recomputed here. A snapshot without data skips the check
// entirely.
func DetectTrap(marginDelta float64, tech TechnicalSnapshot) TrapStatus {
	if !tech.OK {
		return TrapNone
	}

	if marginDelta > 0 && !tech.PriceUp && tech.VolUp {
		return TrapFallingKnife
	}
	return TrapNone
}

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weilun/chipscan/internal/scoring"
)

func TestRenderContent(t *testing.T) {
	records := []scoring.ScoreRecord{
		{
			Code:            "2330",
			Name:            "台積電",
			MarginTrend:     scoring.MarginIncreased,
			MarginDeltaLots: 500,
			Trend:           true,
			BiasPct:         5,
			Character:       scoring.VolumeAttack,
			Trap:            scoring.TrapNone,
			Score:           5,
		},
		{
			Code:            "2603",
			Name:            "長榮",
			MarginTrend:     scoring.MarginIncreased,
			MarginDeltaLots: 120,
			Trend:           false,
			BiasPct:         -3,
			Character:       scoring.VolumePanic,
			Trap:            scoring.TrapFallingKnife,
			Score:           -4,
		},
	}

	out := Render(records)

	assert.Contains(t, out, "共 2 檔")
	for _, title := range columnTitles {
		assert.Contains(t, out, title)
	}

	assert.Contains(t, out, "2330")
	assert.Contains(t, out, "台積電")
	assert.Contains(t, out, "🔥攻擊買量")
	assert.Contains(t, out, "💀散戶接刀")
	assert.Contains(t, out, "-3%")
	assert.Contains(t, out, "-4")

	// Ranked order is preserved as given.
	assert.Less(t, strings.Index(out, "2330"), strings.Index(out, "2603"))
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	assert.Contains(t, out, "共 0 檔")
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "5", formatScore(5))
	assert.Equal(t, "4.5", formatScore(4.5))
	assert.Equal(t, "-4", formatScore(-4))
	assert.Equal(t, "0", formatScore(0))
}

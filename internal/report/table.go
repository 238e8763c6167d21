package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weilun/chipscan/internal/scoring"
)

// Table styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	bullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	bearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	cautionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	scoreUpStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	scoreDownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
)

var columnTitles = []string{
	"代號", "名稱", "資增", "張數", "趨勢", "乖離", "量能本質", "籌碼警示", "綜合評分",
}

// Render lays out scored records as a ranked terminal table, highest score
// first as the scanner delivers them.
func Render(records []scoring.ScoreRecord) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("📊 籌碼掃描結果（共 %d 檔）", len(records))))
	b.WriteString("\n\n")

	rows := make([][]string, len(records))
	styles := make([][]lipgloss.Style, len(records))
	for i, rec := range records {
		rows[i], styles[i] = formatRow(rec)
	}

	widths := columnWidths(rows)

	var header []string
	for c, title := range columnTitles {
		header = append(header, pad(title, widths[c]))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, "  ")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", totalWidth(widths))))
	b.WriteString("\n")

	for i, row := range rows {
		var cells []string
		for c, cell := range row {
			cells = append(cells, styles[i][c].Render(pad(cell, widths[c])))
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}

	return b.String()
}

// formatRow resolves one record to its display cells and per-cell style.
func formatRow(rec scoring.ScoreRecord) ([]string, []lipgloss.Style) {
	plain := lipgloss.NewStyle()

	cells := []string{
		rec.Code,
		rec.Name,
		rec.MarginTrend.Display(),
		strconv.Itoa(rec.MarginDeltaLots),
		trendMark(rec.Trend),
		fmt.Sprintf("%d%%", rec.BiasPct),
		rec.Character.Display(),
		rec.Trap.Display(),
		formatScore(rec.Score),
	}

	styles := []lipgloss.Style{
		plain,
		plain,
		marginStyle(rec.MarginTrend),
		plain,
		trendStyle(rec.Trend),
		plain,
		characterStyle(rec.Character),
		trapStyle(rec.Trap),
		scoreStyle(rec.Score),
	}

	return cells, styles
}

func trendMark(up bool) string {
	if up {
		return "✅"
	}
	return "❌"
}

// formatScore trims trailing zeros so half-point scores stay readable.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func marginStyle(trend scoring.MarginTrend) lipgloss.Style {
	switch trend {
	case scoring.MarginIncreased:
		return bullStyle
	case scoring.MarginNotIncreased:
		return bearStyle
	default:
		return mutedStyle
	}
}

func trendStyle(up bool) lipgloss.Style {
	if up {
		return bullStyle
	}
	return bearStyle
}

func characterStyle(character scoring.VolumeCharacter) lipgloss.Style {
	switch character {
	case scoring.VolumeAttack:
		return bullStyle
	case scoring.VolumePanic:
		return bearStyle
	case scoring.VolumeShrink:
		return cautionStyle
	case scoring.VolumeWashout:
		return bullStyle
	default:
		return mutedStyle
	}
}

func trapStyle(trap scoring.TrapStatus) lipgloss.Style {
	if trap == scoring.TrapFallingKnife {
		return scoreDownStyle
	}
	return mutedStyle
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score > 0:
		return scoreUpStyle
	case score < 0:
		return scoreDownStyle
	default:
		return mutedStyle
	}
}

// pad right-fills a cell to the target display width. Wide CJK runes count
// double, which lipgloss already accounts for.
func pad(cell string, width int) string {
	gap := width - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	return cell + strings.Repeat(" ", gap)
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(columnTitles))
	for c, title := range columnTitles {
		widths[c] = lipgloss.Width(title)
	}
	for _, row := range rows {
		for c, cell := range row {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/contract"
)

// FormatFairness renders the team fairness score, per-analyst scores,
// and any rebalancing recommendations.
func FormatFairness(m *contract.FairnessMetrics) string {
	var b strings.Builder

	b.WriteString(Header("Fairness") + "\n\n")
	b.WriteString(fmt.Sprintf("  Team score: %s\n", scoreStyled(m.OverallFairnessScore)))

	if len(m.IndividualScores) > 0 {
		headers := []string{"ANALYST", "SCORE"}
		rows := make([][]string, 0, len(m.IndividualScores))
		for _, s := range m.IndividualScores {
			rows = append(rows, []string{s.AnalystName, scoreStyled(s.Score)})
		}
		b.WriteString("\n" + RenderTable(headers, rows))
	}

	for _, rec := range m.Recommendations {
		b.WriteString(StyleYellow.Render("  → "+rec) + "\n")
	}

	return b.String()
}

func scoreStyled(score float64) string {
	text := fmt.Sprintf("%.2f", score)
	switch {
	case score >= 0.8:
		return StyleGreen.Render(text)
	case score >= 0.5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

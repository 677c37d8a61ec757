package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

// FormatGenerationResult renders a preview or apply outcome: proposed
// assignments, conflicts, overwrites, and the fairness summary.
func FormatGenerationResult(r *contract.GenerationResult) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Schedule %s – %s",
		r.StartDate.Format(domain.DateLayout), r.EndDate.Format(domain.DateLayout))))
	b.WriteString("\n\n")

	if len(r.ProposedSchedules) == 0 {
		b.WriteString(Dim("No new assignments needed.") + "\n")
	} else {
		headers := []string{"DATE", "DAY", "ANALYST", "SHIFT", "SCREENER", "TYPE"}
		rows := make([][]string, 0, len(r.ProposedSchedules))
		for _, p := range r.ProposedSchedules {
			screener := Dim("-")
			if p.IsScreener {
				screener = StyleYellow.Render("yes")
			}
			typ := Dim(string(p.Type))
			if p.Type == domain.ProposalOverwrite {
				typ = StylePurple.Render(string(p.Type))
			}
			rows = append(rows, []string{
				p.Date.Format(domain.DateLayout),
				Dim(p.Date.Weekday().String()[:3]),
				Bold(p.AnalystName),
				ShiftStyle(p.ShiftType).Render(string(p.ShiftType)),
				screener,
				typ,
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(r.Overwrites) > 0 {
		b.WriteString("\n" + Header("Overwrites") + "\n\n")
		for _, o := range r.Overwrites {
			b.WriteString(fmt.Sprintf("  %s %s: %s → %s\n",
				o.Date.Format(domain.DateLayout), o.AnalystID,
				Dim(string(o.OldShiftType)), ShiftStyle(o.NewShiftType).Render(string(o.NewShiftType))))
		}
	}

	if len(r.Conflicts) > 0 {
		b.WriteString("\n" + Header("Conflicts") + "\n\n")
		for _, c := range r.Conflicts {
			b.WriteString(fmt.Sprintf("  %s %s\n", SeverityLabel(c.Severity), c.Message))
		}
	}

	b.WriteString("\n" + FormatFairness(&r.FairnessMetrics))

	b.WriteString(Dim(fmt.Sprintf("\nGenerated in %dms", r.PerformanceMetrics.AlgorithmExecutionMS)) + "\n")
	if r.Applied {
		b.WriteString(StyleGreen.Render("Applied.") + "\n")
	}

	return b.String()
}

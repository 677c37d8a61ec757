package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
)

// FormatWorkload renders one analyst's weekly workload analysis.
func FormatWorkload(name string, w *domain.WeeklyWorkload) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Workload: %s, week of %s", name, w.WeekStart.Format(domain.DateLayout))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Scheduled days:   %d\n", w.ScheduledWorkDays))
	b.WriteString(fmt.Sprintf("  Weekend days:     %d\n", w.WeekendWorkDays))
	if w.HolidayWorkDays > 0 {
		b.WriteString(fmt.Sprintf("  Holiday days:     %d\n", w.HolidayWorkDays))
	}
	b.WriteString(fmt.Sprintf("  Comp-off (auto):  %d\n", w.AutoCompOffDays))
	b.WriteString(fmt.Sprintf("  Comp-off (bank):  %d\n", w.BankedCompOffDays))

	overtime := fmt.Sprintf("%d", w.OvertimeDays)
	if w.OvertimeDays > 0 {
		overtime = StyleRed.Render(overtime)
	}
	b.WriteString(fmt.Sprintf("  Overtime days:    %s\n", overtime))

	balanced := StyleGreen.Render("balanced")
	if !w.IsBalanced {
		balanced = StyleYellow.Render("unbalanced")
	}
	b.WriteString(fmt.Sprintf("  Week is %s\n", balanced))

	if len(w.Violations) > 0 {
		b.WriteString("\n" + Header("Violations") + "\n\n")
		for _, v := range w.Violations {
			b.WriteString(fmt.Sprintf("  %s %s\n", SeverityLabel(v.Severity), v.Description))
			if v.SuggestedFix != "" {
				b.WriteString(Dim("      fix: "+v.SuggestedFix) + "\n")
			}
		}
	}

	return b.String()
}

package formatter

import (
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
)

// FormatScheduleList renders persisted schedules as a table. Analyst
// names come from the given id-to-name map; unknown IDs fall back to
// the raw ID.
func FormatScheduleList(rows []*domain.Schedule, names map[string]string) string {
	if len(rows) == 0 {
		return Dim("No schedules in range.") + "\n"
	}

	headers := []string{"ID", "DATE", "DAY", "ANALYST", "SHIFT", "SCREENER"}
	table := make([][]string, 0, len(rows))
	for _, s := range rows {
		name := names[s.AnalystID]
		if name == "" {
			name = s.AnalystID
		}
		screener := Dim("-")
		if s.IsScreener {
			screener = StyleYellow.Render("yes")
		}
		table = append(table, []string{
			Dim(shortID(s.ID)),
			s.Date.Format(domain.DateLayout),
			Dim(s.Date.Weekday().String()[:3]),
			Bold(name),
			ShiftStyle(s.ShiftType).Render(string(s.ShiftType)),
			screener,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, table))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

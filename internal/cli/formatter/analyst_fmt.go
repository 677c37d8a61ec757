package formatter

import (
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
)

// FormatAnalystList renders the roster as a table.
func FormatAnalystList(analysts []*domain.Analyst) string {
	if len(analysts) == 0 {
		return Dim("No analysts found.") + "\n"
	}

	headers := []string{"ID", "NAME", "SHIFT", "STATUS", "SKILLS"}
	rows := make([][]string, 0, len(analysts))
	for _, a := range analysts {
		status := StyleGreen.Render("active")
		if !a.IsActive {
			status = Dim("inactive")
		}
		rows = append(rows, []string{
			Dim(shortID(a.ID)),
			Bold(a.Name),
			ShiftStyle(a.ShiftType).Render(string(a.ShiftType)),
			status,
			Dim(strings.Join(a.Skills, ", ")),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rota/internal/domain"
)

// FormatCompOffBalance renders an analyst's current comp-off balance.
func FormatCompOffBalance(name string, balance decimal.Decimal) string {
	style := StyleGreen
	if balance.Sign() < 0 {
		style = StyleRed
	}
	return fmt.Sprintf("%s has %s comp-off day(s) banked\n", Bold(name), style.Render(balance.String()))
}

// FormatCompOffHistory renders ledger entries as a table.
func FormatCompOffHistory(transactions []*domain.CompOffTransaction) string {
	if len(transactions) == 0 {
		return Dim("No comp-off transactions in range.") + "\n"
	}

	headers := []string{"WEEK", "TYPE", "AMOUNT", "NOTE"}
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		amount := t.Signed()
		styled := StyleGreen.Render("+" + t.Amount.String())
		if amount.Sign() < 0 {
			styled = StyleRed.Render(amount.String())
		}
		rows = append(rows, []string{
			t.WeekStart.Format(domain.DateLayout),
			compOffTypeStyled(t.Type),
			styled,
			Dim(t.Note),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func compOffTypeStyled(ct domain.CompOffType) string {
	switch ct {
	case domain.CompOffUsed:
		return StyleYellow.Render(string(ct))
	case domain.CompOffAutoAssigned:
		return StyleBlue.Render(string(ct))
	default:
		return StyleFg.Render(string(ct))
	}
}

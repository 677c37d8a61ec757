package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompOffTransaction is one append-only ledger entry. Balance is the
// signed sum over entries: EARNED and AUTO_ASSIGNED credit, USED debits.
type CompOffTransaction struct {
	ID             string
	AnalystID      string
	Type           CompOffType
	Amount         decimal.Decimal // always positive; sign comes from Type
	IsBanked       bool
	IsAutoAssigned bool
	WeekStart      time.Time // Sunday-anchored week the entry belongs to
	Note           string
	CreatedAt      time.Time
}

// Signed returns the amount with the ledger sign applied.
func (t CompOffTransaction) Signed() decimal.Decimal {
	if t.Type == CompOffUsed {
		return t.Amount.Neg()
	}
	return t.Amount
}

package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementRow is one ledger row with its running-balance snapshot
type StatementRow struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	EntryDate   time.Time       `json:"entry_date"`
	Type        EntryType       `json:"type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

// Statement is a running-balance view over a party's ledger for a date range
type Statement struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Rows           []StatementRow  `json:"rows"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// statementLine is the minimal shape the reducer needs from either ledger
type statementLine struct {
	id          uuid.UUID
	date        time.Time
	entryType   EntryType
	debit       decimal.Decimal
	credit      decimal.Decimal
	description string
}

// BuildCustomerStatement folds customer ledger rows into a statement.
// Rows must all belong to one customer; the reducer orders them itself so
// callers do not depend on query ordering.
func BuildCustomerStatement(opening decimal.Decimal, entries []CustomerLedgerEntry) Statement {
	lines := make([]statementLine, len(entries))
	for i, e := range entries {
		lines[i] = statementLine{e.ID, e.EntryDate, e.Type, e.Debit, e.Credit, e.Description}
	}
	return buildStatement(opening, lines)
}

// BuildSupplierStatement folds supplier ledger rows into a statement
func BuildSupplierStatement(opening decimal.Decimal, entries []SupplierLedgerEntry) Statement {
	lines := make([]statementLine, len(entries))
	for i, e := range entries {
		lines[i] = statementLine{e.ID, e.EntryDate, e.Type, e.Debit, e.Credit, e.Description}
	}
	return buildStatement(opening, lines)
}

// buildStatement accumulates the running balance in (entry_date, id) order.
// The id tie-break keeps balances reproducible when several rows share a date.
func buildStatement(opening decimal.Decimal, lines []statementLine) Statement {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].date.Equal(lines[j].date) {
			return lines[i].date.Before(lines[j].date)
		}
		return lines[i].id.String() < lines[j].id.String()
	})

	running := opening.Round(2)
	rows := make([]StatementRow, 0, len(lines))
	for _, line := range lines {
		running = running.Add(line.debit).Sub(line.credit).Round(2)
		rows = append(rows, StatementRow{
			EntryID:     line.id,
			EntryDate:   line.date,
			Type:        line.entryType,
			Debit:       line.debit,
			Credit:      line.credit,
			Description: line.description,
			Balance:     running,
		})
	}

	return Statement{
		OpeningBalance: opening.Round(2),
		Rows:           rows,
		ClosingBalance: running,
	}
}

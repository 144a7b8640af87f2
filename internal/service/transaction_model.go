package service

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/harborline/transactions-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID               int64
	TransactionType  string
	Name             null.Val[string]
	Email            null.Val[string]
	AmountUSD        null.Val[decimal.Decimal]
	OriginalAmount   null.Val[decimal.Decimal]
	OriginalCurrency null.Val[string]
	Date             null.Val[time.Time]
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// ListTransactionsQuery bundles optional filters with an optional cursor.
// The filterable columns match the table's secondary indexes.
type ListTransactionsQuery struct {
	TransactionType *string
	Email           *string
	Date            *time.Time
	Cursor          *TransactionCursor
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:               row.ID,
		TransactionType:  row.TransactionType,
		Name:             row.Name,
		Email:            row.Email,
		AmountUSD:        row.AmountUSD,
		OriginalAmount:   row.OriginalAmount,
		OriginalCurrency: row.OriginalCurrency,
		Date:             row.Date,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

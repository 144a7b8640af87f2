package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no row matches the requested transaction ID.
var ErrNotFound = errors.New("transaction not found")

// Transaction represents a row of the transactions table. The id is
// assigned by the database and immutable; created_at and updated_at are
// filled by column defaults, and updated_at is refreshed by a database
// trigger on every update, so no writer can bypass it.
type Transaction struct {
	ID               int64                     `db:"id"`
	TransactionType  string                    `db:"transaction_type"`
	Name             null.Val[string]          `db:"name"`
	Email            null.Val[string]          `db:"email"`
	AmountUSD        null.Val[decimal.Decimal] `db:"amount_usd"`
	OriginalAmount   null.Val[decimal.Decimal] `db:"original_amount"`
	OriginalCurrency null.Val[string]          `db:"original_currency"`
	Date             null.Val[time.Time]       `db:"date"`
	CreatedAt        time.Time                 `db:"created_at"`
	UpdatedAt        time.Time                 `db:"updated_at"`
}

// TransactionCreate is the input for inserting a new transaction.
// Only transaction_type is required; everything else is nullable.
type TransactionCreate struct {
	TransactionType  string
	Name             null.Val[string]
	Email            null.Val[string]
	AmountUSD        null.Val[decimal.Decimal]
	OriginalAmount   null.Val[decimal.Decimal]
	OriginalCurrency null.Val[string]
	Date             null.Val[time.Time]
}

// TransactionUpdate is a partial update. Unset fields are left untouched,
// null fields are cleared. updated_at is intentionally absent: the
// database trigger owns it.
type TransactionUpdate struct {
	TransactionType  omit.Val[string]
	Name             omitnull.Val[string]
	Email            omitnull.Val[string]
	AmountUSD        omitnull.Val[decimal.Decimal]
	OriginalAmount   omitnull.Val[decimal.Decimal]
	OriginalCurrency omitnull.Val[string]
	Date             omitnull.Val[time.Time]
}

// IsEmpty reports whether the update would change nothing.
func (u *TransactionUpdate) IsEmpty() bool {
	return !u.TransactionType.IsValue() &&
		u.Name.IsUnset() &&
		u.Email.IsUnset() &&
		u.AmountUSD.IsUnset() &&
		u.OriginalAmount.IsUnset() &&
		u.OriginalCurrency.IsUnset() &&
		u.Date.IsUnset()
}

// TransactionFilter specifies filters for listing transactions. The
// filterable columns match the table's secondary indexes.
type TransactionFilter struct {
	TransactionType *string
	Email           *string
	Date            *time.Time
	MaxCreationTime *time.Time
	Limit           int
	Offset          int
}

// ITransactionTable defines read access to the transactions table used
// outside the operator write path.
type ITransactionTable interface {
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

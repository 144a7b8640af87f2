package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aarondl/opt/omitnull"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer provides write access to the transactions table within a single
// database transaction.
type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns the stored row, so the
// database-assigned id and timestamp defaults are visible to the caller.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into(tableName,
			"transaction_type", "name", "email", "amount_usd",
			"original_amount", "original_currency", "date",
		),
		im.Values(psql.Arg(
			create.TransactionType,
			create.Name,
			create.Email,
			create.AmountUSD,
			create.OriginalAmount,
			create.OriginalCurrency,
			create.Date,
		)),
		im.Returning(tableColumns...),
	)

	return bob.One(ctx, w.tx, query, scan.StructMapper[*Transaction]())
}

// Update applies a partial update and returns the stored row, whose
// updated_at has been refreshed by the table trigger.
func (w *Writer) Update(ctx context.Context, id int64, update *TransactionUpdate) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(tableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(tableColumns...),
	}

	if update.TransactionType.IsValue() {
		queryMods = append(queryMods, um.SetCol("transaction_type").ToArg(update.TransactionType.MustGet()))
	}
	queryMods = appendNullableSet(queryMods, "name", update.Name)
	queryMods = appendNullableSet(queryMods, "email", update.Email)
	queryMods = appendNullableSet(queryMods, "amount_usd", update.AmountUSD)
	queryMods = appendNullableSet(queryMods, "original_amount", update.OriginalAmount)
	queryMods = appendNullableSet(queryMods, "original_currency", update.OriginalCurrency)
	queryMods = appendNullableSet(queryMods, "date", update.Date)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes a transaction and reports ErrNotFound when no row
// matched.
func (w *Writer) Delete(ctx context.Context, id int64) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func appendNullableSet[T any](queryMods []bob.Mod[*dialect.UpdateQuery], column string, value omitnull.Val[T]) []bob.Mod[*dialect.UpdateQuery] {
	if value.IsUnset() {
		return queryMods
	}
	if value.IsNull() {
		return append(queryMods, um.SetCol(column).ToArg(nil))
	}
	return append(queryMods, um.SetCol(column).ToArg(value.MustGet()))
}

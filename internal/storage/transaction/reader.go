package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const tableName = "transactions"

var tableColumns = []any{
	"id", "transaction_type", "name", "email", "amount_usd",
	"original_amount", "original_currency", "date", "created_at", "updated_at",
}

// Reader provides read access to the transactions table over any bob
// executor, autocommit or transaction-scoped.
type Reader struct {
	exec bob.Executor
}

var _ ITransactionTable = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (r *Reader) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(tableColumns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List returns transactions matching the filter, newest first. When a
// limit is set, one extra row is fetched so callers can detect a next
// page. Nil filter returns all rows.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(tableColumns...),
		sm.From(tableName),
	}

	if filter != nil {
		if filter.TransactionType != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(*filter.TransactionType))))
		}
		if filter.Email != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("email").EQ(psql.Arg(*filter.Email))))
		}
		if filter.Date != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("date").EQ(psql.Arg(*filter.Date))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

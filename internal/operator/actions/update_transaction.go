package actions

import (
	"context"

	"github.com/harborline/transactions-server/internal/storage"
	"github.com/harborline/transactions-server/internal/storage/transaction"
)

type UpdateTransaction struct {
	ID     int64
	Update *transaction.TransactionUpdate

	// Updated holds the stored row after Perform succeeds, with
	// updated_at refreshed by the table trigger.
	Updated *transaction.Transaction
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Update == nil || a.Update.IsEmpty() {
		row, err := writer.Transaction.FindByID(ctx, a.ID)
		if err != nil {
			return err
		}
		a.Updated = row
		return nil
	}

	row, err := writer.Transaction.Update(ctx, a.ID, a.Update)
	if err != nil {
		return err
	}

	a.Updated = row
	return nil
}

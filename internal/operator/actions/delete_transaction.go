package actions

import (
	"context"

	"github.com/harborline/transactions-server/internal/storage"
)

type DeleteTransaction struct {
	ID int64
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transaction.Delete(ctx, a.ID)
}

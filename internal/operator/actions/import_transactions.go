package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/harborline/transactions-server/internal/storage"
	"github.com/harborline/transactions-server/internal/storage/transaction"
)

// ImportTransactions inserts a parsed statement batch. The whole batch
// commits or rolls back together.
type ImportTransactions struct {
	BatchID uuid.UUID
	Creates []*transaction.TransactionCreate

	// Inserted counts rows written before a failure, for error reporting.
	Inserted int
}

func (a *ImportTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	for _, create := range a.Creates {
		if _, err := writer.Transaction.Insert(ctx, create); err != nil {
			return fmt.Errorf("import batch %s row %d: %w", a.BatchID, a.Inserted+1, err)
		}
		a.Inserted++
	}
	return nil
}

package actions

import (
	"context"
	"errors"

	"github.com/harborline/transactions-server/internal/storage"
	"github.com/harborline/transactions-server/internal/storage/transaction"
)

type CreateTransaction struct {
	Create *transaction.TransactionCreate

	// Created holds the stored row after Perform succeeds.
	Created *transaction.Transaction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Create == nil || a.Create.TransactionType == "" {
		return errors.New("create transaction: transaction type is required")
	}

	row, err := writer.Transaction.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	a.Created = row
	return nil
}

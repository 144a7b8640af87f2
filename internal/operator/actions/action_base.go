package actions

import (
	"context"

	"github.com/harborline/transactions-server/internal/storage"
)

// IAction is a unit of work performed inside one database transaction.
// Implementations may record results on themselves; the operator
// guarantees the caller only reads them after Perform returned.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

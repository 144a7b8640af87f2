package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/service"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

// GetTransactionInput is the Huma input for fetching a transaction.
type GetTransactionInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Transaction ID"`
}

// GetTransactionOutput is the Huma output for fetching a transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for fetching a single transaction.
type transactionGetter interface {
	GetTransaction(ctx context.Context, id int64) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Description: "Returns a single transaction by ID.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getTransactionMs")
	}
	tx, err := h.TransactionService.GetTransaction(ctx, input.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, storagetx.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get transaction", err)
	}

	return &GetTransactionOutput{Body: transactionFromService(*tx)}, nil
}

package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/operator/actions"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

// UpdateTransactionBody is the request body for a partial update. Absent
// fields are left untouched; an explicit empty string clears the field.
type UpdateTransactionBody struct {
	TransactionType  *string `json:"transactionType,omitempty" doc:"New transaction type, must be non-empty"`
	Name             *string `json:"name,omitempty" doc:"New payer name, empty string clears the field"`
	Email            *string `json:"email,omitempty" doc:"New email address, empty string clears the field"`
	AmountUSD        *string `json:"amountUSD,omitempty" doc:"New USD amount, empty string clears the field"`
	OriginalAmount   *string `json:"originalAmount,omitempty" doc:"New original amount, empty string clears the field"`
	OriginalCurrency *string `json:"originalCurrency,omitempty" doc:"New currency code, empty string clears the field"`
	Date             *string `json:"date,omitempty" doc:"New calendar date YYYY-MM-DD, empty string clears the field"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Transaction ID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
// The body carries the stored row, including the trigger-refreshed
// updatedAt.
type UpdateTransactionOutput struct {
	Body Transaction
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Applies a partial update to a transaction. The updated-at timestamp is refreshed by the database.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (*storagetx.TransactionUpdate, error) {
	update := &storagetx.TransactionUpdate{}

	if input.Body.TransactionType != nil {
		if *input.Body.TransactionType == "" {
			return nil, huma.NewError(http.StatusBadRequest, "transactionType must not be empty")
		}
		update.TransactionType.Set(*input.Body.TransactionType)
	}
	if input.Body.Name != nil {
		if *input.Body.Name == "" {
			update.Name.Null()
		} else {
			update.Name.Set(*input.Body.Name)
		}
	}
	if input.Body.Email != nil {
		if *input.Body.Email == "" {
			update.Email.Null()
		} else {
			update.Email.Set(*input.Body.Email)
		}
	}
	if input.Body.AmountUSD != nil {
		if *input.Body.AmountUSD == "" {
			update.AmountUSD.Null()
		} else {
			amount, err := decimal.NewFromString(*input.Body.AmountUSD)
			if err != nil {
				return nil, huma.NewError(http.StatusBadRequest, "invalid amountUSD", err)
			}
			update.AmountUSD.Set(amount)
		}
	}
	if input.Body.OriginalAmount != nil {
		if *input.Body.OriginalAmount == "" {
			update.OriginalAmount.Null()
		} else {
			amount, err := decimal.NewFromString(*input.Body.OriginalAmount)
			if err != nil {
				return nil, huma.NewError(http.StatusBadRequest, "invalid originalAmount", err)
			}
			update.OriginalAmount.Set(amount)
		}
	}
	if input.Body.OriginalCurrency != nil {
		if *input.Body.OriginalCurrency == "" {
			update.OriginalCurrency.Null()
		} else {
			update.OriginalCurrency.Set(*input.Body.OriginalCurrency)
		}
	}
	if input.Body.Date != nil {
		if *input.Body.Date == "" {
			update.Date.Null()
		} else {
			date, err := time.Parse(dateLayout, *input.Body.Date)
			if err != nil {
				return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
			}
			update.Date.Set(date)
		}
	}

	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateTransaction{
		ID:     input.ID,
		Update: update,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, storagetx.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update transaction", err)
	}

	return &UpdateTransactionOutput{Body: transactionFromStorage(action.Updated)}, nil
}

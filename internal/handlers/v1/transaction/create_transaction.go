package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/operator/actions"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	TransactionType  string `json:"transactionType" minLength:"1" maxLength:"50" doc:"Transaction type, e.g. Payment or Refund"`
	Name             string `json:"name,omitempty" doc:"Full name of the payer"`
	Email            string `json:"email,omitempty" doc:"Email address of the payer"`
	AmountUSD        string `json:"amountUSD,omitempty" doc:"Decimal amount in USD"`
	OriginalAmount   string `json:"originalAmount,omitempty" doc:"Decimal amount in the original currency"`
	OriginalCurrency string `json:"originalCurrency,omitempty" maxLength:"10" doc:"Original currency code"`
	Date             string `json:"date,omitempty" doc:"Calendar date, YYYY-MM-DD"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID        int64  `json:"id" doc:"Assigned transaction ID"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// actionProcessor is the part of the operator the write handlers need.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction record.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*storagetx.TransactionCreate, error) {
	create := &storagetx.TransactionCreate{
		TransactionType: input.Body.TransactionType,
	}

	if input.Body.Name != "" {
		create.Name = null.From(input.Body.Name)
	}
	if input.Body.Email != "" {
		create.Email = null.From(input.Body.Email)
	}
	if input.Body.AmountUSD != "" {
		amount, err := decimal.NewFromString(input.Body.AmountUSD)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid amountUSD", err)
		}
		create.AmountUSD = null.From(amount)
	}
	if input.Body.OriginalAmount != "" {
		amount, err := decimal.NewFromString(input.Body.OriginalAmount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid originalAmount", err)
		}
		create.OriginalAmount = null.From(amount)
	}
	if input.Body.OriginalCurrency != "" {
		create.OriginalCurrency = null.From(input.Body.OriginalCurrency)
	}
	if input.Body.Date != "" {
		date, err := time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		create.Date = null.From(date)
	}

	return create, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Create: create}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", action.Created.ID)
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body: CreateTransactionResponse{
			ID:        action.Created.ID,
			CreatedAt: action.Created.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

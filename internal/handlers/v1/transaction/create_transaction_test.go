package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/transactions-server/internal/operator/actions"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

// mockOperator is a mock for actionProcessor, shared by the write handler tests.
type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// newCreateTestAPI registers the handler against a humatest API and returns it.
func newCreateTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(op).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --
// These verify individual parsed field values which the HTTP tests don't assert.

func TestParseCreateTransactionInput_AllFields(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			TransactionType:  "Payment",
			Name:             "John Smith",
			Email:            "john@example.com",
			AmountUSD:        "42.50",
			OriginalAmount:   "40.00",
			OriginalCurrency: "EUR",
			Date:             "2024-11-02",
		},
	}

	create, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, "Payment", create.TransactionType)
	assert.Equal(t, "John Smith", create.Name.MustGet())
	assert.Equal(t, "john@example.com", create.Email.MustGet())
	assert.True(t, create.AmountUSD.MustGet().Equal(decimal.RequireFromString("42.50")))
	assert.True(t, create.OriginalAmount.MustGet().Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, "EUR", create.OriginalCurrency.MustGet())
	assert.Equal(t, time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), create.Date.MustGet())
}

func TestParseCreateTransactionInput_OnlyRequiredField(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{TransactionType: "Refund"},
	}

	create, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, "Refund", create.TransactionType)
	assert.True(t, create.Name.IsNull())
	assert.True(t, create.Email.IsNull())
	assert.True(t, create.AmountUSD.IsNull())
	assert.True(t, create.OriginalAmount.IsNull())
	assert.True(t, create.OriginalCurrency.IsNull())
	assert.True(t, create.Date.IsNull())
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mockOp := new(mockOperator)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreateTransaction)
		return ok &&
			create.Create.TransactionType == "Payment" &&
			create.Create.Email.MustGet() == "john@example.com" &&
			create.Create.AmountUSD.MustGet().Equal(decimal.RequireFromString("42.50"))
	})).Run(func(args mock.Arguments) {
		action := args.Get(1).(*actions.CreateTransaction)
		action.Created = &storagetx.Transaction{
			ID:              17,
			TransactionType: action.Create.TransactionType,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}).Return(nil)

	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		TransactionType: "Payment",
		Email:           "john@example.com",
		AmountUSD:       "42.50",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(17), body.ID)
	assert.Equal(t, now.Format(time.RFC3339), body.CreatedAt)
	mockOp.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingTransactionType(t *testing.T) {
	mockOp := new(mockOperator)

	// Huma's minLength:"1" schema validation rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		AmountUSD: "10.00",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	mockOp := new(mockOperator)

	// Amounts are plain strings with no Huma format tag, so
	// parseCreateTransactionInput handles validation and returns 400.
	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		TransactionType: "Payment",
		AmountUSD:       "not-a-decimal",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidOriginalAmount(t *testing.T) {
	mockOp := new(mockOperator)

	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		TransactionType: "Payment",
		OriginalAmount:  "ten euros",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidDate(t *testing.T) {
	mockOp := new(mockOperator)

	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		TransactionType: "Payment",
		Date:            "02/11/2024",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_OperatorError(t *testing.T) {
	mockOp := new(mockOperator)
	mockOp.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	resp := newCreateTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		TransactionType: "Payment",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}

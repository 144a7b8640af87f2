package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/transactions-server/internal/service"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

type mockTransactionGetter struct {
	mock.Mock
}

func (m *mockTransactionGetter) GetTransaction(ctx context.Context, id int64) (*service.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func newGetTestAPI(t *testing.T, svc transactionGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetTransactionHandler(svc).Register(api)
	return api
}

func TestHTTP_GetTransaction_Success(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	updated := now.Add(2 * time.Hour)

	mockSvc := new(mockTransactionGetter)
	mockSvc.On("GetTransaction", mock.Anything, int64(7)).Return(&service.Transaction{
		ID:               7,
		TransactionType:  "Payment",
		Name:             null.From("John Smith"),
		Email:            null.From("john@example.com"),
		AmountUSD:        null.From(decimal.RequireFromString("42.50")),
		OriginalAmount:   null.From(decimal.RequireFromString("40.00")),
		OriginalCurrency: null.From("EUR"),
		Date:             null.From(time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)),
		CreatedAt:        now,
		UpdatedAt:        updated,
	}, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/transaction/7")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "Payment", body.TransactionType)
	assert.Equal(t, "John Smith", body.Name)
	assert.Equal(t, "john@example.com", body.Email)
	assert.Equal(t, "42.5", body.AmountUSD)
	assert.Equal(t, "EUR", body.OriginalCurrency)
	assert.Equal(t, "2024-11-02", body.Date)
	assert.Equal(t, now.Format(time.RFC3339), body.CreatedAt)
	assert.Equal(t, updated.Format(time.RFC3339), body.UpdatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_NullFieldsOmitted(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockTransactionGetter)
	mockSvc.On("GetTransaction", mock.Anything, int64(3)).Return(&service.Transaction{
		ID:              3,
		TransactionType: "Refund",
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/transaction/3")

	assert.Equal(t, http.StatusOK, resp.Code)

	var raw map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.NotContains(t, raw, "name")
	assert.NotContains(t, raw, "email")
	assert.NotContains(t, raw, "amountUSD")
	assert.NotContains(t, raw, "date")
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	mockSvc := new(mockTransactionGetter)
	mockSvc.On("GetTransaction", mock.Anything, int64(99)).
		Return(nil, fmt.Errorf("lookup: %w", storagetx.ErrNotFound))

	resp := newGetTestAPI(t, mockSvc).Get("/v1/transaction/99")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_InvalidID(t *testing.T) {
	mockSvc := new(mockTransactionGetter)

	// Huma path parameter coercion rejects this before the handler runs.
	resp := newGetTestAPI(t, mockSvc).Get("/v1/transaction/not-a-number")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "GetTransaction")
}

func TestHTTP_GetTransaction_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionGetter)
	mockSvc.On("GetTransaction", mock.Anything, int64(7)).
		Return(nil, errors.New("database unavailable"))

	resp := newGetTestAPI(t, mockSvc).Get("/v1/transaction/7")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}

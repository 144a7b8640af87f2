package transaction

import (
	"time"

	"github.com/harborline/transactions-server/internal/service"
	storagetx "github.com/harborline/transactions-server/internal/storage/transaction"
)

const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction record.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID               int64  `json:"id" doc:"Transaction ID"`
	TransactionType  string `json:"transactionType" doc:"Transaction type, e.g. Payment or Refund"`
	Name             string `json:"name,omitempty" doc:"Full name of the payer"`
	Email            string `json:"email,omitempty" doc:"Email address of the payer"`
	AmountUSD        string `json:"amountUSD,omitempty" doc:"Decimal amount in USD"`
	OriginalAmount   string `json:"originalAmount,omitempty" doc:"Decimal amount in the original currency"`
	OriginalCurrency string `json:"originalCurrency,omitempty" doc:"Original currency code"`
	Date             string `json:"date,omitempty" doc:"Calendar date, YYYY-MM-DD"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt        string `json:"updatedAt" doc:"RFC3339 time of the most recent modification"`
}

func transactionFromService(tx service.Transaction) Transaction {
	converted := Transaction{
		ID:               tx.ID,
		TransactionType:  tx.TransactionType,
		Name:             tx.Name.GetOrZero(),
		Email:            tx.Email.GetOrZero(),
		OriginalCurrency: tx.OriginalCurrency.GetOrZero(),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.AmountUSD.IsValue() {
		converted.AmountUSD = tx.AmountUSD.MustGet().String()
	}
	if tx.OriginalAmount.IsValue() {
		converted.OriginalAmount = tx.OriginalAmount.MustGet().String()
	}
	if tx.Date.IsValue() {
		converted.Date = tx.Date.MustGet().Format(dateLayout)
	}
	return converted
}

func transactionFromStorage(row *storagetx.Transaction) Transaction {
	converted := Transaction{
		ID:               row.ID,
		TransactionType:  row.TransactionType,
		Name:             row.Name.GetOrZero(),
		Email:            row.Email.GetOrZero(),
		OriginalCurrency: row.OriginalCurrency.GetOrZero(),
		CreatedAt:        row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        row.UpdatedAt.Format(time.RFC3339),
	}
	if row.AmountUSD.IsValue() {
		converted.AmountUSD = row.AmountUSD.MustGet().String()
	}
	if row.OriginalAmount.IsValue() {
		converted.OriginalAmount = row.OriginalAmount.MustGet().String()
	}
	if row.Date.IsValue() {
		converted.Date = row.Date.MustGet().Format(dateLayout)
	}
	return converted
}

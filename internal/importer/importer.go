// Package importer loads parsed statement CSV files into storage. The
// expected format is the output of the statement parser:
//
//	transaction_type,name,email,amount_usd,original_amount,original_currency,date
//
// Rows missing a USD amount are converted from the original currency
// before insert, so every stored row carries a USD figure.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/harborline/transactions-server/internal/operator/actions"
	"github.com/harborline/transactions-server/internal/storage/transaction"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{
	"transaction_type", "name", "email", "amount_usd",
	"original_amount", "original_currency", "date",
}

// currencyConverter is the part of the rates client the importer needs.
type currencyConverter interface {
	ConvertToUSD(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
}

// actionProcessor is the part of the operator the importer needs.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type Importer struct {
	Rates    currencyConverter
	Operator actionProcessor
	Logger   *logrus.Logger
}

// Result summarizes one import run.
type Result struct {
	BatchID  uuid.UUID
	Imported int
	Skipped  int
}

// Import reads a statement CSV and writes all parseable rows as one batch.
// Malformed rows are skipped and counted, not fatal; a bad header or a
// failed batch write is.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty input")
	}
	if err != nil {
		return nil, err
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var creates []*transaction.TransactionCreate
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			i.Logger.WithError(err).WithField("line", line).Warn("Importer.badRecord")
			continue
		}

		create, err := i.parseRecord(ctx, record)
		if err != nil {
			skipped++
			i.Logger.WithError(err).WithField("line", line).Warn("Importer.skipRow")
			continue
		}
		creates = append(creates, create)
	}

	batchID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	if len(creates) > 0 {
		action := &actions.ImportTransactions{
			BatchID: batchID,
			Creates: creates,
		}
		if err := i.Operator.Process(ctx, action); err != nil {
			return nil, err
		}
	}

	return &Result{
		BatchID:  batchID,
		Imported: len(creates),
		Skipped:  skipped,
	}, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d header columns, got %d", len(csvHeader), len(header))
	}
	for idx, want := range csvHeader {
		if strings.TrimSpace(header[idx]) != want {
			return fmt.Errorf("unexpected header column %q, want %q", header[idx], want)
		}
	}
	return nil
}

func (i *Importer) parseRecord(ctx context.Context, record []string) (*transaction.TransactionCreate, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}

	transactionType := strings.TrimSpace(record[0])
	if transactionType == "" {
		return nil, errors.New("missing transaction_type")
	}

	create := &transaction.TransactionCreate{TransactionType: transactionType}

	if name := strings.TrimSpace(record[1]); name != "" {
		create.Name = null.From(name)
	}
	if email := strings.TrimSpace(record[2]); email != "" {
		create.Email = null.From(email)
	}

	var amountUSD null.Val[decimal.Decimal]
	if raw := strings.TrimSpace(record[3]); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount_usd %q: %w", raw, err)
		}
		amountUSD = null.From(amount)
	}

	var originalAmount null.Val[decimal.Decimal]
	if raw := strings.TrimSpace(record[4]); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid original_amount %q: %w", raw, err)
		}
		originalAmount = null.From(amount)
	}
	create.OriginalAmount = originalAmount

	currency := strings.ToUpper(strings.TrimSpace(record[5]))
	if currency != "" {
		create.OriginalCurrency = null.From(currency)
	}

	if raw := strings.TrimSpace(record[6]); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		create.Date = null.From(date)
	}

	if !amountUSD.IsValue() && originalAmount.IsValue() {
		converted, err := i.Rates.ConvertToUSD(ctx, originalAmount.MustGet(), currency)
		if err != nil {
			// Last resort carried over from the original pipeline: keep
			// the original amount so the row still has a USD figure.
			i.Logger.WithError(err).WithField("currency", currency).Warn("Importer.convertFallback")
			converted = originalAmount.MustGet().Round(2)
		}
		amountUSD = null.From(converted)
	}
	create.AmountUSD = amountUSD

	return create, nil
}

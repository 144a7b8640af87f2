package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/harborline/transactions-server/internal/config"
	"github.com/harborline/transactions-server/internal/importer"
	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/operator"
	"github.com/harborline/transactions-server/internal/rates"
	"github.com/harborline/transactions-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()

	if len(os.Args) < 2 {
		logrus.Fatal("usage: import_transactions <statement.csv>")
		return
	}

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(env)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	delegator := operator.NewOperatorDelegator(dbStorage, 1)
	delegator.Start()
	defer delegator.Stop()

	file, err := os.Open(os.Args[1])
	if err != nil {
		logrus.WithError(err).Fatal("os.Open")
		return
	}
	defer file.Close()

	imp := &importer.Importer{
		Rates:    rates.NewClient(env.RatesURL),
		Operator: delegator,
		Logger:   logger,
	}

	result, err := imp.Import(context.Background(), file)
	if err != nil {
		logrus.WithError(err).Fatal("importer.Import")
		return
	}

	logrus.WithFields(logrus.Fields{
		"batchID":  result.BatchID.String(),
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("Import complete")
}

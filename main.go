package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harborline/transactions-server/api"
	"github.com/harborline/transactions-server/internal/config"
	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/operator"
	"github.com/harborline/transactions-server/internal/service"
	"github.com/harborline/transactions-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("transactions-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	svc := service.NewService(dbStorage)

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: delegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/harborline/transactions-server/internal/handlers/v1/status"
	transactionv1 "github.com/harborline/transactions-server/internal/handlers/v1/transaction"
	"github.com/harborline/transactions-server/internal/logging"
	"github.com/harborline/transactions-server/internal/operator"
	"github.com/harborline/transactions-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("transactions-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.NewHumaMiddleware(r.Logger))

	transactionv1.NewCreateTransactionHandler(r.Operator).Register(humaAPI)
	transactionv1.NewGetTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transactionv1.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transactionv1.NewUpdateTransactionHandler(r.Operator).Register(humaAPI)
	transactionv1.NewDeleteTransactionHandler(r.Operator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

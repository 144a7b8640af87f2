package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	server_config "github.com/harborline/transactions-server/internal/config"
	"github.com/harborline/transactions-server/internal/storage"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	db, err := sql.Open("postgres", storage.ConnectionString(env))
	if err != nil {
		logrus.WithError(err).Fatal("sql.Open")
		return
	}

	preMigrationVersion, postMigrationVersion, err := storage.MigrateUp(db)
	if err != nil {
		logrus.WithError(err).Fatal("storage.MigrateUp")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}

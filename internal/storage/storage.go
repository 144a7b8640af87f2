package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/harborline/transactions-server/internal/config"
	"github.com/harborline/transactions-server/internal/storage/transaction"
)

// Storage bundles the database handle with autocommit read access to the
// transactions table. Writes go through Write, which opens a
// transaction-scoped Writer.
type Storage struct {
	DB           *sql.DB
	bobDB        bob.DB
	Transactions transaction.ITransactionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, err
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		bobDB:        bobDB,
		Transactions: transaction.NewReader(bobDB),
	}, nil
}

// ConnectionString builds the postgres DSN from config.
func ConnectionString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

// Write begins a database transaction and returns a Writer scoped to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/soukhub/marketplace/internal/core/domain"
)

type SQLDB struct {
	*sql.DB
}

func NewSQLDB(ctx context.Context, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)
	s := SQLDB{db}
	if err := s.PingContext(ctx); err != nil {
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")
	return s, nil
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

// classifyErr maps storage-level race conditions onto
// [domain.ErrConflict] so the write coordinators can retry the whole
// unit once. Everything else passes through untouched.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation,
			pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Code)
		}
	}
	return err
}

// inTx wraps one aggregate write into a transaction. Commit errors are
// classified so a concurrent slug insert surfaces as a conflict.
func inTx(
	ctx context.Context, db sqldbTx, op string, fn func(tx *sql.Tx) error,
) (txErr error) {
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if txErr == nil {
			if err := tx.Commit(); err != nil {
				txErr = fmt.Errorf(
					"%s: failed to commit: %w", op, classifyErr(err),
				)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	return fn(tx)
}

type sqldbTx interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"github.com/duckdb/duckdb-go/v2"
	"github.com/explore-flights/awards/common"
	"os"
	"path/filepath"
)

// Database is an in-memory DuckDB holding a copy of the base data database.
// Initialization runs in the background; Conn blocks until it is done.
type Database struct {
	initDone   <-chan struct{}
	dbWorkPath string
	connector  *duckdb.Connector
	database   *sql.DB
	err        error
}

func NewDatabase(baseDbPath string) *Database {
	initDone := make(chan struct{})
	db := Database{initDone: initDone}
	go func() {
		defer close(initDone)

		var err error
		defer func() {
			if err != nil {
				db.err = errors.Join(err, db.release())
			}
		}()

		if db.dbWorkPath, err = os.MkdirTemp("", "duckdb_temp_*"); err != nil {
			return
		}

		if db.connector, err = duckdb.NewConnector("", connInit(context.Background())); err != nil {
			return
		}

		db.database = sql.OpenDB(db.connector)

		var conn *sql.Conn
		conn, err = db.database.Conn(context.Background())
		if err != nil {
			return
		}

		if err = dbInit(context.Background(), conn, db.dbWorkPath, baseDbPath); err != nil {
			err = errors.Join(err, conn.Close())
			return
		}

		err = conn.Close()
	}()

	return &db
}

func (db *Database) Conn(ctx context.Context) (*sql.Conn, error) {
	<-db.initDone
	if err := db.err; err != nil {
		return nil, err
	}

	database := db.database
	if database == nil {
		return nil, errors.New("database is nil")
	}

	return database.Conn(ctx)
}

func (db *Database) Close() error {
	<-db.initDone
	return db.release()
}

func (db *Database) release() error {
	var errs []error
	if database := db.database; database != nil {
		db.database = nil

		if err := database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if connector := db.connector; connector != nil {
		db.connector = nil

		if err := connector.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if dbWorkPath := db.dbWorkPath; dbWorkPath != "" {
		db.dbWorkPath = ""

		if err := os.RemoveAll(dbWorkPath); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func dbInit(ctx context.Context, conn *sql.Conn, dbWorkPath, baseDbPath string) error {
	bootQueries := []common.Tuple[string, []any]{
		// https://github.com/duckdb/duckdb/issues/12837
		{
			`SET home_directory = ?`,
			[]any{filepath.Join(dbWorkPath, "home")},
		},
		{
			`SET extension_directory = ?`,
			[]any{filepath.Join(dbWorkPath, "extensions")},
		},
		{
			`SET temp_directory = ?`,
			[]any{filepath.Join(dbWorkPath, "tmp")},
		},
		{
			fmt.Sprintf(`ATTACH '%s' AS base_db (READ_ONLY)`, baseDbPath),
			nil,
		},
		{
			`COPY FROM DATABASE base_db TO memory`,
			nil,
		},
		{
			`DETACH base_db`,
			nil,
		},
	}

	for _, query := range bootQueries {
		if _, err := conn.ExecContext(ctx, query.V1, query.V2...); err != nil {
			return fmt.Errorf("failed to run query %q: %w", query.V1, err)
		}
	}

	return nil
}

func connInit(ctx context.Context) func(execer driver.ExecerContext) error {
	return func(execer driver.ExecerContext) error {
		bootQueries := []common.Tuple[string, []driver.NamedValue]{
			{
				`SET threads TO 1`,
				[]driver.NamedValue{},
			},
		}

		for _, query := range bootQueries {
			if _, err := execer.ExecContext(ctx, query.V1, query.V2); err != nil {
				return fmt.Errorf("failed to run query %q: %w", query.V1, err)
			}
		}

		return nil
	}
}

package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const SQLiteFile = "airline_demo.db"

// sqliteSink fills a single database file, one transaction per table.
type sqliteSink struct {
	*staging
	db *sql.DB
}

func newSQLiteSink(st *staging) (*sqliteSink, error) {
	f, err := st.create(SQLiteFile)
	if err != nil {
		return nil, err
	}
	path := f.Name()
	f.Close()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		st.abort()
		return nil, fmt.Errorf("failed to create SQLite database: %w", err)
	}
	// a single connection keeps every table in the same file handle
	db.SetMaxOpenConns(1)
	return &sqliteSink{staging: st, db: db}, nil
}

func (s *sqliteSink) Write(ctx context.Context, table types.Table) error {
	if err := validateTable(table); err != nil {
		return err
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", table.Name, buildColumnDefs(table))
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, buildInsertSQL(table.Name, table.Columns))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert for %s: %w", table.Name, err)
	}
	defer stmt.Close()

	values := make([]any, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			values[i] = sqliteValue(v)
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row into %s: %w", table.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table.Name, err)
	}
	return nil
}

func (s *sqliteSink) Commit() ([]string, error) {
	if err := s.db.Close(); err != nil {
		s.abort()
		return nil, fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return s.commit()
}

func (s *sqliteSink) Abort() error {
	s.db.Close()
	return s.abort()
}

func sqliteValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(types.TimestampLayout)
	}
	return v
}

// buildColumnDefs types each column from the first row's values.
func buildColumnDefs(table types.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		typ := "TEXT"
		if len(table.Rows) > 0 {
			switch table.Rows[0][i].(type) {
			case int, int32, int64:
				typ = "INTEGER"
			case float32, float64:
				typ = "REAL"
			}
		}
		defs[i] = col + " " + typ
	}
	if len(table.Columns) > 0 && strings.HasSuffix(table.Columns[0], "_id") {
		defs[0] += " PRIMARY KEY"
	}
	return strings.Join(defs, ", ")
}

func buildInsertSQL(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
}

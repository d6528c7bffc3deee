package export

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

// sqlSink writes load_<file>.sql per table: a comment header followed by one
// multi-row INSERT per chunk.
type sqlSink struct {
	*staging
	opts Options
}

func (s *sqlSink) Write(ctx context.Context, table types.Table) error {
	if err := validateTable(table); err != nil {
		return err
	}

	name := "load_" + table.File + ".sql"
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 256*1024)
	fmt.Fprintf(w, "-- %s - Load %s data\n", s.opts.Title, table.Name)
	fmt.Fprintf(w, "-- %d rows in %d statement(s)\n\n", len(table.Rows), chunks(len(table.Rows), s.opts.ChunkSize))

	for start := 0; start < len(table.Rows); start += s.opts.ChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + s.opts.ChunkSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}

		stmt, err := insertStatement(table.Name, table.Columns, table.Rows[start:end])
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
		if _, err := w.WriteString(stmt + ";\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

func (s *sqlSink) Commit() ([]string, error) {
	return s.commit()
}

func (s *sqlSink) Abort() error {
	return s.abort()
}

func chunks(rows, size int) int {
	if rows == 0 {
		return 0
	}
	return (rows + size - 1) / size
}

// insertStatement inlines every value as a literal so the file loads without
// bind parameters.
func insertStatement(table string, columns []string, rows [][]any) (string, error) {
	builder := sq.Insert(table).Columns(columns...)
	for _, row := range rows {
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = sq.Expr(formatValue(v))
		}
		builder = builder.Values(values...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		return "", fmt.Errorf("unexpected bind arguments in %s insert", table)
	}
	return query, nil
}

// formatValue renders a SQL literal.
func formatValue(val any) string {
	if val == nil {
		return "NULL"
	}
	switch v := val.(type) {
	case string:
		return quote(v)
	case int, int32, int64, float32, float64:
		return formatCell(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return quote(v.UTC().Format(types.TimestampLayout))
	default:
		return quote(fmt.Sprintf("%v", v))
	}
}

// quote doubles single quotes only; backslashes are literal under
// standard_conforming_strings.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

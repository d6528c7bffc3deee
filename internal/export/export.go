// Package export writes generated tables as bulk-load files.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const (
	FormatCSV    = "csv"
	FormatSQL    = "sql"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"

	DefaultChunkSize = 25000
)

var (
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
	ErrClosed            = errors.New("sink already committed or aborted")
)

// validIdentifier guards table and column names that end up in SQL text.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Sink receives tables in dependency order. Nothing carries its final name
// until Commit; Abort removes everything written so far.
type Sink interface {
	Write(ctx context.Context, table types.Table) error
	Commit() ([]string, error)
	Abort() error
}

type Options struct {
	// ChunkSize bounds rows per INSERT statement in the sql format.
	ChunkSize int
	// Title prefixes the header comment of generated SQL files.
	Title string
}

func New(format, dir string, opts Options) (Sink, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Title == "" {
		opts.Title = "Airline Demo"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	st := &staging{dir: dir}
	switch format {
	case FormatCSV:
		return &csvSink{staging: st}, nil
	case FormatSQL:
		return &sqlSink{staging: st, opts: opts}, nil
	case FormatJSON:
		return &jsonSink{staging: st}, nil
	case FormatSQLite:
		return newSQLiteSink(st)
	default:
		return nil, fmt.Errorf("%w: %q (expected csv, sql, json or sqlite)", ErrUnknownFormat, format)
	}
}

func validateTable(table types.Table) error {
	if !validIdentifier.MatchString(table.Name) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table.Name)
	}
	for _, col := range table.Columns {
		if !validIdentifier.MatchString(col) {
			return fmt.Errorf("%w: column %q in table %s", ErrInvalidIdentifier, col, table.Name)
		}
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("table %s row %d: %d values for %d columns", table.Name, i, len(row), len(table.Columns))
		}
	}
	return nil
}

type pending struct {
	tmp   string
	final string
}

// staging tracks temporaries in the output directory. Renames within one
// directory keep each final file all-or-nothing.
type staging struct {
	dir     string
	files   []pending
	settled bool
}

func (s *staging) create(name string) (*os.File, error) {
	if s.settled {
		return nil, ErrClosed
	}
	f, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	s.files = append(s.files, pending{tmp: f.Name(), final: filepath.Join(s.dir, name)})
	return f, nil
}

func (s *staging) commit() ([]string, error) {
	if s.settled {
		return nil, ErrClosed
	}
	s.settled = true

	paths := make([]string, 0, len(s.files))
	for i, p := range s.files {
		if err := os.Rename(p.tmp, p.final); err != nil {
			for _, done := range paths {
				_ = os.Remove(done)
			}
			s.files = s.files[i:]
			_ = s.removeAll()
			return nil, fmt.Errorf("failed to move %s into place: %w", filepath.Base(p.final), err)
		}
		paths = append(paths, p.final)
	}
	s.files = nil
	return paths, nil
}

func (s *staging) abort() error {
	if s.settled {
		return nil
	}
	s.settled = true
	return s.removeAll()
}

func (s *staging) removeAll() error {
	var errs []error
	for _, p := range s.files {
		if err := os.Remove(p.tmp); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Warn().Int("files", len(errs)).Msg("Some temporary files could not be removed.")
	}
	s.files = nil
	return errors.Join(errs...)
}

// formatCell renders a value for text formats.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(types.TimestampLayout)
	default:
		return fmt.Sprint(x)
	}
}

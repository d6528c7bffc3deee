package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const csvLoadScript = "load_csv.sql"

// csvSink writes <file>.csv per table with a header row, plus a psql script
// that \COPYs each file into its table.
type csvSink struct {
	*staging
	copies []string
}

func (s *csvSink) Write(ctx context.Context, table types.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateTable(table); err != nil {
		return err
	}

	name := table.File + ".csv"
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 256*1024)
	w := csv.NewWriter(buf)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header for %s: %w", table.Name, err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", table.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV for %s: %w", table.Name, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV for %s: %w", table.Name, err)
	}

	s.copies = append(s.copies, fmt.Sprintf("\\COPY %s FROM '%s' CSV HEADER;", table.Name, name))
	return f.Close()
}

func (s *csvSink) Commit() ([]string, error) {
	if len(s.copies) > 0 {
		f, err := s.create(csvLoadScript)
		if err != nil {
			return nil, err
		}
		for _, line := range s.copies {
			if _, err := fmt.Fprintln(f, line); err != nil {
				f.Close()
				s.abort()
				return nil, fmt.Errorf("failed to write %s: %w", csvLoadScript, err)
			}
		}
		if err := f.Close(); err != nil {
			s.abort()
			return nil, fmt.Errorf("failed to write %s: %w", csvLoadScript, err)
		}
	}
	return s.commit()
}

func (s *csvSink) Abort() error {
	return s.abort()
}

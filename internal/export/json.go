package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

// jsonSink writes <file>.json per table as an array of objects whose keys
// keep the table's column order.
type jsonSink struct {
	*staging
}

func (s *jsonSink) Write(ctx context.Context, table types.Table) error {
	if err := validateTable(table); err != nil {
		return err
	}

	keys := make([][]byte, len(table.Columns))
	for i, col := range table.Columns {
		k, err := json.Marshal(col)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	name := table.File + ".json"
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 256*1024)
	w.WriteString("[")

	b := getBuffer()
	defer putBuffer(b)

	for r, row := range table.Rows {
		if r%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		b.Reset()
		if r > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		for i, v := range row {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Write(keys[i])
			b.WriteString(": ")
			val, err := jsonValue(v)
			if err != nil {
				return fmt.Errorf("failed to encode %s.%s: %w", table.Name, table.Columns[i], err)
			}
			b.Write(val)
		}
		b.WriteString("}")

		if _, err := w.Write(b.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if len(table.Rows) > 0 {
		w.WriteString("\n")
	}
	w.WriteString("]\n")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

func jsonValue(v any) ([]byte, error) {
	if t, ok := v.(time.Time); ok {
		return json.Marshal(t.UTC().Format(types.TimestampLayout))
	}
	return json.Marshal(v)
}

func (s *jsonSink) Commit() ([]string, error) {
	return s.commit()
}

func (s *jsonSink) Abort() error {
	return s.abort()
}

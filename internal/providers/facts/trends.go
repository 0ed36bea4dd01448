package facts

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/sandevgo/pastcast/pkg/log"
)

const maxTrendValues = 3

// Trends searches a local CSV dataset. The file is re-read on every call so
// edits show up without a restart.
type Trends struct {
	path string
}

func NewTrends(path string) *Trends {
	return &Trends{path: path}
}

// Related returns up to three values from the first text column of the rows
// where any text cell contains text, case-insensitively.
func (t *Trends) Related(ctx context.Context, text string) []string {
	header, rows, err := t.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.FromCtx(ctx).Warn().Err(err).Str("path", t.path).Msg("trend dataset unreadable")
		}
		return nil
	}

	cols := textColumns(len(header), rows)
	if len(cols) == 0 {
		return nil
	}

	needle := strings.ToLower(text)
	var out []string
	for _, row := range rows {
		if !rowMatches(row, cols, needle) {
			continue
		}
		out = append(out, cell(row, cols[0]))
		if len(out) == maxTrendValues {
			break
		}
	}
	return out
}

// Note renders the trend prefix, or "" when nothing matched.
func Note(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return "Historical trends related: " + strings.Join(values, ", ") + ". "
}

func (t *Trends) load() ([]string, [][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// textColumns lists the columns holding at least one non-numeric, non-empty value.
func textColumns(width int, rows [][]string) []int {
	var cols []int
	for c := 0; c < width; c++ {
		for _, row := range rows {
			v := strings.TrimSpace(cell(row, c))
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

func rowMatches(row []string, cols []int, needle string) bool {
	for _, c := range cols {
		if strings.Contains(strings.ToLower(cell(row, c)), needle) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

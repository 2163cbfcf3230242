package lib

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

func init() {
	RegisterCodec(jsonlCodec{})
}

// jsonlCodec stores tables as JSON lines: the column list on the first
// line, then one JSON array per row.
type jsonlCodec struct{}

func (jsonlCodec) Format() types.Format { return types.FormatJSONL }

func (jsonlCodec) SaveTable(t *types.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	writeLine := func(record []string) error {
		line, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}

	if err := writeLine(t.Columns); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writeLine(row); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return file.Sync()
}

func (jsonlCodec) LoadTable(path string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table := &types.Table{}
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		var record []string
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("failed to parse stored table: %w", err)
		}
		if first {
			table.Columns = record
			first = false
			continue
		}
		table.Rows = append(table.Rows, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

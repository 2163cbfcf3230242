package lib

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

func init() {
	RegisterCodec(csvCodec{})
}

// csvCodec stores tables as RFC 4180 CSV with a header row.
type csvCodec struct{}

func (csvCodec) Format() types.Format { return types.FormatCSV }

func (csvCodec) SaveTable(t *types.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Sync()
}

func (csvCodec) LoadTable(path string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored table: %w", err)
	}
	if len(records) == 0 {
		return &types.Table{}, nil
	}

	table := &types.Table{Columns: records[0]}
	if len(records) > 1 {
		table.Rows = records[1:]
	}
	return table, nil
}

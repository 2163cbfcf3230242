package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// tableSeparators maps supported table source extensions to their field
// separator.
var tableSeparators = map[string]rune{
	"csv": ',',
	"ssv": ';',
	"tsv": '\t',
}

// ImportTable reads a delimited source file into a table and stores it
// under the given node name through the configured codec backend.
func ImportTable(dir, spec, name, filePath, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	sep, ok := tableSeparators[ext]
	if !ok {
		return fmt.Errorf("unsupported table source extension %q (supported: csv, ssv, tsv)", ext)
	}

	table, err := readDelimited(filePath, sep)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	if err := store.SaveTable(table, name, ext, filePath); err != nil {
		return fmt.Errorf("failed to import %s: %w", filePath, err)
	}

	fmt.Printf("Imported %s as %s to %s (%d rows)\n", filePath, name, spec, len(table.Rows))
	return nil
}

// readDelimited parses a separated-values file, treating the first
// record as the column header.
func readDelimited(filePath string, sep rune) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = sep
	// Source files in the wild have ragged rows; let the codec see them
	// as-is rather than failing the whole import.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records found")
	}

	table := &types.Table{Columns: records[0]}
	if len(records) > 1 {
		table.Rows = records[1:]
	}
	return table, nil
}

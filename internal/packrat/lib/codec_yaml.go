package lib

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

func init() {
	RegisterCodec(yamlCodec{})
}

// yamlCodec stores tables as a YAML document with columns and rows keys.
type yamlCodec struct{}

func (yamlCodec) Format() types.Format { return types.FormatYAML }

func (yamlCodec) SaveTable(t *types.Table, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to serialize table: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (yamlCodec) LoadTable(path string) (*types.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var table types.Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse stored table: %w", err)
	}
	return &table, nil
}

package commands

import (
	"fmt"
	"sort"

	"github.com/packrat-data/packrat/internal/packrat/types"
)

// previewRows caps how many table rows inspect prints.
const previewRows = 10

// Inspect resolves a slash-delimited path inside a package and prints
// what it finds: a group listing, a table preview, or the backing
// object path of a raw file.
func Inspect(dir, spec, path, format string) error {
	store, err := openStore(dir, spec, format)
	if err != nil {
		return err
	}

	resolved, err := store.Resolve(path)
	if err != nil {
		return err
	}

	switch {
	case resolved.Group != nil:
		names := make([]string, 0, len(resolved.Group.Children))
		for name := range resolved.Group.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child := resolved.Group.Children[name]
			if child.Type == types.NodeGroup {
				fmt.Printf("%s/\n", name)
			} else {
				fmt.Printf("%s\t%s\t%s\n", name, child.Type, child.Hashes[0])
			}
		}
	case resolved.Table != nil:
		fmt.Println(joinTabbed(resolved.Table.Columns))
		for i, row := range resolved.Table.Rows {
			if i == previewRows {
				fmt.Printf("... (%d more rows)\n", len(resolved.Table.Rows)-previewRows)
				break
			}
			fmt.Println(joinTabbed(row))
		}
	default:
		fmt.Println(resolved.FilePath)
	}
	return nil
}

func joinTabbed(record []string) string {
	out := ""
	for i, field := range record {
		if i > 0 {
			out += "\t"
		}
		out += field
	}
	return out
}

// Package seed embeds the starter course catalog.
package seed

import (
	_ "embed"
	"os"
)

//go:embed catalog.yaml
var catalog []byte

// Catalog returns the catalog YAML at path, or the embedded one when path
// is empty.
func Catalog(path string) ([]byte, error) {
	if path == "" {
		return catalog, nil
	}
	return os.ReadFile(path)
}

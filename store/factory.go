package store

import (
	"fmt"

	"wecare/domain"

	"github.com/spf13/afero"
)

// NewRepository constructs a domain.CatalogRepository by kind: "memory" or
// "file". For the file store, provide the catalog path and the filesystem
// to write through; for memory, both are ignored.
func NewRepository(kind, path string, fs afero.Fs) (domain.CatalogRepository, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryStore(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file store")
		}
		return NewFileStore(fs, path), nil
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wecare/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// fieldsPerRecord is the minimum field count of a well-formed catalog line:
// name, brand, quantity, cost, country.
const fieldsPerRecord = 5

// fieldSep separates record fields on disk.
const fieldSep = ", "

// FileStore is a line-oriented text file implementation of
// domain.CatalogRepository. One product per line, comma-space separated.
type FileStore struct {
	fs   afero.Fs
	path string
}

// compile-time assertion
var _ domain.CatalogRepository = (*FileStore)(nil)

// NewFileStore constructs a FileStore over fs at the given path. The file
// does not need to exist yet; a missing file loads as an empty catalog.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the full catalog. Malformed lines are skipped individually
// with a diagnostic; an unreadable store degrades to an empty catalog.
func (s *FileStore) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("catalog file not found, starting empty", "path", s.path)
		} else {
			slog.Warn("catalog file unreadable, starting empty", "path", s.path, "error", err)
		}
		return domain.NewCatalog(nil), nil
	}

	var products []domain.Product
	for i, line := range strings.Split(string(b), "\n") {
		if line == "" {
			continue
		}
		p, err := parseRecord(i+1, line)
		if err != nil {
			slog.Warn("skipping malformed catalog record", "path", s.path, "error", err)
			continue
		}
		products = append(products, p)
	}
	return domain.NewCatalog(products), nil
}

// Save rewrites the whole backing file from the catalog's current
// sequence. A failed save propagates to the caller.
func (s *FileStore) Save(ctx context.Context, catalog *domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save catalog: %w", err)
		}
	}

	var sb strings.Builder
	for _, p := range catalog.Products() {
		sb.WriteString(formatRecord(p))
		sb.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// parseRecord decodes one catalog line. The selling price is rederived
// from the stored cost; it is not persisted.
func parseRecord(lineNo int, line string) (domain.Product, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < fieldsPerRecord {
		return domain.Product{}, domain.NewMalformedRecordError(lineNo, line,
			fmt.Sprintf("expected %d fields, got %d", fieldsPerRecord, len(fields)))
	}

	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return domain.Product{}, domain.NewMalformedRecordError(lineNo, line,
			fmt.Sprintf("unparsable quantity %q", fields[2]))
	}
	cost, err := decimal.NewFromString(fields[3])
	if err != nil {
		return domain.Product{}, domain.NewMalformedRecordError(lineNo, line,
			fmt.Sprintf("unparsable cost %q", fields[3]))
	}

	p, err := domain.NewProduct(fields[0], fields[1], fields[4], quantity, cost)
	if err != nil {
		return domain.Product{}, domain.NewMalformedRecordError(lineNo, line, err.Error())
	}
	return p, nil
}

// formatRecord encodes one product as a catalog line.
func formatRecord(p domain.Product) string {
	return strings.Join([]string{
		p.Name,
		p.Brand,
		strconv.Itoa(p.Quantity),
		formatCost(p.Cost),
		p.Country,
	}, fieldSep)
}

// formatCost renders the cost at its parsed scale. Decimal.String trims
// trailing zeros, which would rewrite a stored "5.00" as "5" and break
// the save(load(store)) == store guarantee.
func formatCost(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

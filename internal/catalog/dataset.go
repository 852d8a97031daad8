package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
	"github.com/angelmondragon/electroquick/pkg/types"
	"go.uber.org/multierr"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// Dataset is the full static catalog.
type Dataset struct {
	Categories []types.Category `json:"categories"`
	Products   []types.Product  `json:"products"`
}

// LoadDataset reads the catalog at path, or the bundled sample catalog when
// path is blank.
func LoadDataset(path string) (Dataset, error) {
	raw := embeddedCatalog
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Dataset{}, fmt.Errorf("read catalog %q: %w", path, err)
		}
		raw = b
	}
	return ParseDataset(raw)
}

// ParseDataset decodes and validates a catalog document.
func ParseDataset(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, pkgerrors.Wrap(pkgerrors.CodeSerialization, err, "catalog is not valid json")
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate reports every structural problem in the dataset at once.
func (d Dataset) Validate() error {
	var errs error

	categories := make(map[string]struct{}, len(d.Categories))
	for i, c := range d.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			errs = multierr.Append(errs, fmt.Errorf("category %d: blank id", i))
			continue
		}
		if _, dup := categories[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("category %q: duplicate id", id))
		}
		categories[id] = struct{}{}
	}

	products := make(map[string]struct{}, len(d.Products))
	for i, p := range d.Products {
		if !p.HasIdentity() {
			errs = multierr.Append(errs, fmt.Errorf("product %d: blank id", i))
			continue
		}
		if _, dup := products[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
		}
		products[p.ID] = struct{}{}

		if !p.HasValidPrice() {
			errs = multierr.Append(errs, fmt.Errorf("product %q: invalid price %v", p.ID, p.Price))
		}
		if p.Stock < 0 {
			errs = multierr.Append(errs, fmt.Errorf("product %q: negative stock", p.ID))
		}
		if _, ok := categories[p.CategoryID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("product %q: unknown category %q", p.ID, p.CategoryID))
		}
	}

	if errs == nil {
		return nil
	}
	problems := multierr.Errors(errs)
	details := make([]string, len(problems))
	for i, e := range problems {
		details[i] = e.Error()
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog").WithDetails(map[string]any{"problems": details})
}

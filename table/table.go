// Package table defines the tabular-data surface consumed from catalog and
// spectrum retrieval services.
//
// The fitting core never interprets file-format details; it only reads
// named numeric columns and their unit strings. Actual retrieval (VizieR,
// SDSS and friends) is an external collaborator behind the Fetcher
// interface and is not implemented here.
package table

import (
	"fmt"

	"github.com/astrokit/modelfit/errs"
)

// Table is an ordered collection of equal-length numeric columns, each
// addressable by name and carrying an optional unit string.
type Table struct {
	names   []string
	columns map[string][]float64
	units   map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		columns: make(map[string][]float64),
		units:   make(map[string]string),
	}
}

// AddColumn appends a named column with its unit string. All columns must
// have the same length; the first column fixes it. Fails with
// ErrDuplicateColumn for a repeated name and ErrLengthMismatch for a
// column of different length.
func (t *Table) AddColumn(name string, values []float64, unit string) error {
	if _, exists := t.columns[name]; exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
	}
	if len(t.names) > 0 && len(values) != t.Len() {
		return fmt.Errorf("%w: column %q has %d rows, table has %d",
			errs.ErrLengthMismatch, name, len(values), t.Len())
	}

	t.names = append(t.names, name)
	t.columns[name] = values
	t.units[name] = unit

	return nil
}

// Column returns the named column's values. The slice is shared, not
// copied; callers must not modify it.
func (t *Table) Column(name string) ([]float64, error) {
	col, exists := t.columns[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	return col, nil
}

// Unit returns the named column's unit string, which may be empty.
func (t *Table) Unit(name string) (string, error) {
	if _, exists := t.columns[name]; !exists {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	return t.units[name], nil
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}

	return len(t.columns[t.names[0]])
}

// Fetcher retrieves a table for a catalog identifier. Implementations wrap
// remote query services; the identifier encodes either a catalog name or a
// (plate, mjd, fiber) spectrum triple built with SpectrumID.
type Fetcher interface {
	Fetch(identifier string) (*Table, error)
}

// SpectrumID encodes a (plate, mjd, fiber) spectrum triple as a retrieval
// identifier, e.g. SpectrumID(1323, 52797, 12) -> "spec-1323-52797-0012".
func SpectrumID(plate, mjd, fiber int) string {
	return fmt.Sprintf("spec-%d-%d-%04d", plate, mjd, fiber)
}

// StaticFetcher serves tables from a fixed identifier map. It backs tests
// and examples that would otherwise need a live catalog service.
type StaticFetcher map[string]*Table

// Fetch returns the table registered under the identifier, or
// ErrUnknownIdentifier.
func (s StaticFetcher) Fetch(identifier string) (*Table, error) {
	t, exists := s[identifier]
	if !exists {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownIdentifier, identifier)
	}

	return t, nil
}

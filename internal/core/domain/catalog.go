package domain

import (
	"fmt"
	"strings"
)

// Catalog is the immutable, indexed indicator dictionary.
// It is built once from dictionary records and read-only thereafter,
// so concurrent lookups from independent goroutines are safe.
type Catalog struct {
	records    []IndicatorRecord
	byID       map[string]int
	byFullKey  map[string]int
	byShortKey map[string]int
	byFamily   map[string][]int
}

// NewCatalog builds a catalog from dictionary records.
// Each of the three identifier forms must be unique across the whole
// catalog; a clash fails construction with ErrDuplicateIdentifier.
func NewCatalog(records []IndicatorRecord) (*Catalog, error) {
	c := &Catalog{
		records:    make([]IndicatorRecord, len(records)),
		byID:       make(map[string]int, len(records)),
		byFullKey:  make(map[string]int, len(records)),
		byShortKey: make(map[string]int, len(records)),
		byFamily:   make(map[string][]int),
	}
	copy(c.records, records)

	for i, rec := range c.records {
		if rec.ID == "" || rec.FullKey == "" || rec.ShortKey == "" {
			return nil, fmt.Errorf("record %d: missing identifier: %w", i, ErrInvalidInput)
		}
		forms := []struct {
			token string
			index map[string]int
		}{
			{strings.ToLower(rec.ID), c.byID},
			{strings.ToLower(rec.FullKey), c.byFullKey},
			{strings.ToLower(rec.ShortKey), c.byShortKey},
		}
		for _, form := range forms {
			if _, exists := form.index[form.token]; exists {
				return nil, fmt.Errorf("%q: %w", form.token, ErrDuplicateIdentifier)
			}
			form.index[form.token] = i
		}
		family := rec.FamilyID
		if family == "" {
			// A record with no declared family forms a family of one.
			family = rec.FullKey
			c.records[i].FamilyID = family
		}
		c.byFamily[family] = append(c.byFamily[family], i)
	}

	return c, nil
}

// LookupExact resolves a single identifier token, trying the numeric ID,
// then the full key, then the short key. The first hit wins; each form is
// globally unique so no further disambiguation is needed.
// Matching is case-insensitive. Returns ErrNotFound when nothing matches.
func (c *Catalog) LookupExact(token string) (IndicatorRecord, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return IndicatorRecord{}, ErrInvalidInput
	}
	for _, index := range []map[string]int{c.byID, c.byFullKey, c.byShortKey} {
		if i, ok := index[t]; ok {
			return c.records[i], nil
		}
	}
	return IndicatorRecord{}, fmt.Errorf("%q: %w", token, ErrNotFound)
}

// Family returns every record sharing the given record's family, including
// the record itself, in catalog insertion order.
func (c *Catalog) Family(rec IndicatorRecord) []IndicatorRecord {
	indices := c.byFamily[rec.FamilyID]
	members := make([]IndicatorRecord, 0, len(indices))
	for _, i := range indices {
		members = append(members, c.records[i])
	}
	if len(members) == 0 {
		members = append(members, rec)
	}
	return members
}

// All returns the full corpus in insertion order.
// The returned slice is shared; callers must not modify it.
func (c *Catalog) All() []IndicatorRecord {
	return c.records
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// SupportsDimension reports whether any record in the whole catalog can be
// disaggregated by the given dimension.
func (c *Catalog) SupportsDimension(dim string) bool {
	for _, rec := range c.records {
		if rec.HasDimension(dim) {
			return true
		}
	}
	return false
}

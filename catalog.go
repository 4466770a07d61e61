package marketway

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// DefaultMarketName is used when a catalog is built without a market name.
const DefaultMarketName = "Bamenda Main Market"

// Catalog is an immutable in-memory snapshot of the market's lines and
// history. It is built once and shared by concurrent readers without locking.
// Lines returned by a Catalog are shared and must not be modified.
type Catalog struct {
	name    string
	history string
	entries []catalogEntry
	byName  map[string]*Line
}

// catalogEntry caches lowercase forms used by containment search.
type catalogEntry struct {
	line  *Line
	name  string
	items []string
}

// CatalogSource provides the current catalog snapshot.
type CatalogSource interface {
	Catalog() *Catalog
}

// NewCatalog builds a catalog snapshot from lines. Lines are copied so later
// changes by the caller do not leak into the snapshot.
//
// Returns EINVALID for an invalid line and ECONFLICT for duplicate names
// (case-insensitive) or two lines sharing a column position.
func NewCatalog(name string, lines []*Line, history string) (*Catalog, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultMarketName
	}

	c := &Catalog{
		name:    name,
		history: history,
		entries: make([]catalogEntry, 0, len(lines)),
		byName:  make(map[string]*Line, len(lines)),
	}

	positions := make(map[Layout]string, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}

		key := strings.ToLower(strings.TrimSpace(l.Name))
		if _, exists := c.byName[key]; exists {
			return nil, Errorf(ECONFLICT, "duplicate line name %q", l.Name)
		}
		if other, exists := positions[l.Layout]; exists {
			return nil, Errorf(ECONFLICT, "lines %q and %q share %s column position %d",
				other, l.Name, l.Layout.Column, l.Layout.Order)
		}
		positions[l.Layout] = l.Name

		line := l.Clone()
		entry := catalogEntry{line: line, name: key, items: make([]string, len(line.Items))}
		for i, item := range line.Items {
			entry.items[i] = strings.ToLower(strings.TrimSpace(item))
		}
		c.entries = append(c.entries, entry)
		c.byName[key] = line
	}

	return c, nil
}

// LoadCatalog builds a snapshot from the stored lines and history.
func LoadCatalog(ctx context.Context, name string, lines LineService, history HistoryService) (*Catalog, error) {
	all, err := lines.FindLines(ctx, LineFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}
	text, err := history.FindHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return NewCatalog(name, all, text)
}

// Name returns the market name.
func (c *Catalog) Name() string { return c.name }

// History returns the market history text.
func (c *Catalog) History() string { return c.history }

// Len returns the number of lines.
func (c *Catalog) Len() int { return len(c.entries) }

// Lines returns all lines in load order.
func (c *Catalog) Lines() []*Line {
	lines := make([]*Line, len(c.entries))
	for i, e := range c.entries {
		lines[i] = e.line
	}
	return lines
}

// LineByName looks a line up by case-insensitive name.
func (c *Catalog) LineByName(name string) (*Line, bool) {
	line, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return line, ok
}

// Search returns lines whose name or any item contains term, case-insensitively.
// An empty term matches nothing.
func (c *Catalog) Search(term string) []*Line {
	return c.search(term, true)
}

// SearchItems is like Search but only tests item names.
func (c *Catalog) SearchItems(term string) []*Line {
	return c.search(term, false)
}

func (c *Catalog) search(term string, withName bool) []*Line {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var lines []*Line
	for _, e := range c.entries {
		if withName && strings.Contains(e.name, term) {
			lines = append(lines, e.line)
			continue
		}
		for _, item := range e.items {
			if strings.Contains(item, term) {
				lines = append(lines, e.line)
				break
			}
		}
	}
	return lines
}

// Ensure CatalogHolder implements CatalogSource.
var _ CatalogSource = (*CatalogHolder)(nil)

// CatalogHolder publishes the current catalog snapshot. Reloads replace the
// whole snapshot atomically; in-flight requests keep the snapshot they took.
type CatalogHolder struct {
	current atomic.Pointer[Catalog]
}

// NewCatalogHolder returns a holder publishing c.
func NewCatalogHolder(c *Catalog) *CatalogHolder {
	h := &CatalogHolder{}
	h.current.Store(c)
	return h
}

// Catalog returns the current snapshot.
func (h *CatalogHolder) Catalog() *Catalog {
	return h.current.Load()
}

// Swap publishes c and returns the previous snapshot.
func (h *CatalogHolder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}

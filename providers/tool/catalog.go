package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leofalp/webreader/core/cost"
)

// ErrToolNotFound is returned by [Catalog.Call] for an unknown tool name.
var ErrToolNotFound = errors.New("tool not found")

// Catalog manages a collection of tools with thread-safe operations.
// Names are case-insensitive.
type Catalog struct {
	mu      sync.RWMutex
	tools   map[string]GenericTool
	summary cost.Summary
}

// NewCatalog creates a new empty tool catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tools: make(map[string]GenericTool),
	}
}

// NewCatalogWithTools creates a new catalog pre-populated with the given tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools adds tools under the lowercased ToolInfo().Name, replacing any
// tool already registered with that name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name.
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tool, exists := c.tools[strings.ToLower(name)]
	return tool, exists
}

// Has checks if a tool with the given name exists.
func (c *Catalog) Has(name string) bool {
	_, exists := c.Get(name)
	return exists
}

// Remove removes a tool by name and reports whether it was present.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	lowerName := strings.ToLower(name)
	if _, exists := c.tools[lowerName]; exists {
		delete(c.tools, lowerName)
		return true
	}
	return false
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions returns the advertised metadata of every tool, sorted by name.
func (c *Catalog) Descriptions() []Description {
	names := c.Names()
	out := make([]Description, 0, len(names))
	for _, name := range names {
		if t, ok := c.Get(name); ok {
			out = append(out, t.ToolInfo())
		}
	}
	return out
}

// Size returns the number of tools in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Call dispatches the raw arguments to the named tool and records the
// execution in the catalog's cost summary.
func (c *Catalog) Call(ctx context.Context, name, inputJson string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	c.summary.Record(strings.ToLower(name), t.GetMetrics())
	return t.Call(ctx, inputJson)
}

// Summary returns the running cost summary of calls made through [Catalog.Call].
func (c *Catalog) Summary() *cost.Summary {
	return &c.summary
}

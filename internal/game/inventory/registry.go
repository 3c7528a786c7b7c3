package inventory

import (
	"fmt"
	"strings"
)

// Registry indexes item definitions by numeric ID and by case-insensitive name.
type Registry struct {
	byID   map[int]*ItemDef
	byName map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[int]*ItemDef),
		byName: make(map[string]*ItemDef),
	}
}

// NewRegistryFrom builds a Registry from defs.
//
// Postcondition: returns an error on the first duplicate ID or name.
func NewRegistryFrom(defs []*ItemDef) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterItem adds d to the registry.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID or d.Name is already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.byID[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %d already registered", d.ID)
	}
	key := strings.ToLower(d.Name)
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item name %q already registered", d.Name)
	}
	r.byID[d.ID] = d
	r.byName[key] = d
	return nil
}

// Item returns the ItemDef for the given id and whether it was found.
func (r *Registry) Item(id int) (*ItemDef, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ItemByName returns the ItemDef whose name matches case-insensitively.
func (r *Registry) ItemByName(name string) (*ItemDef, bool) {
	d, ok := r.byName[strings.ToLower(name)]
	return d, ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.byID)
}

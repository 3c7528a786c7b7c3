// Package inventory defines the EarthBound item catalog and the per-character
// item inventory written into save records.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind constants for ItemDef.Kind.
const (
	KindEquipment  = "equipment"
	KindConsumable = "consumable"
	KindKey        = "key"
	KindMisc       = "misc"
)

var validKinds = map[string]bool{
	KindEquipment:  true,
	KindConsumable: true,
	KindKey:        true,
	KindMisc:       true,
}

// ItemDef describes one entry of the game's item table.
type ItemDef struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff 1 <= ID <= 255, Name is non-empty and Kind is known.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID < 1 || d.ID > MaxItemID {
		errs = append(errs, fmt.Errorf("ID must be 1-%d, got %d", MaxItemID, d.ID))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of equipment, consumable, key, misc; got %q", d.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

type catalogFile struct {
	Items []*ItemDef `yaml:"items"`
}

// LoadItems reads every *.yaml and *.yml file in dir. Each file holds an
// "items" list; every entry is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		for _, d := range f.Items {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
			}
			items = append(items, d)
		}
	}
	return items, nil
}

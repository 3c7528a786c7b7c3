package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/ebtoolkit/internal/game/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDef_Validate(t *testing.T) {
	valid := &inventory.ItemDef{ID: 0x11, Name: "Cracked bat", Kind: inventory.KindEquipment}
	assert.NoError(t, valid.Validate())

	for _, d := range []*inventory.ItemDef{
		{ID: 0, Name: "x", Kind: inventory.KindMisc},
		{ID: 256, Name: "x", Kind: inventory.KindMisc},
		{ID: 1, Name: "", Kind: inventory.KindMisc},
		{ID: 1, Name: "x", Kind: "weapon"},
	} {
		assert.Error(t, d.Validate(), "%+v should be invalid", d)
	}
}

func TestLoadItems_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.yaml"), []byte(`
items:
  - id: 17
    name: Cracked bat
    kind: equipment
  - id: 88
    name: Cookie
    kind: consumable
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	items, err := inventory.LoadItems(dir)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 17, items[0].ID)
	assert.Equal(t, "Cookie", items[1].Name)
}

func TestLoadItems_InvalidItem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(`
items:
  - id: 300
    name: Too big
    kind: misc
`), 0644))
	_, err := inventory.LoadItems(dir)
	assert.Error(t, err)
}

func TestLoadItems_MissingDir(t *testing.T) {
	_, err := inventory.LoadItems("/nonexistent/items")
	assert.Error(t, err)
}

func TestRegistry_LookupByIDAndName(t *testing.T) {
	reg, err := inventory.NewRegistryFrom([]*inventory.ItemDef{
		{ID: 17, Name: "Cracked bat", Kind: inventory.KindEquipment},
		{ID: 88, Name: "Cookie", Kind: inventory.KindConsumable},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	d, ok := reg.Item(88)
	require.True(t, ok)
	assert.Equal(t, "Cookie", d.Name)

	d, ok = reg.ItemByName("cracked BAT")
	require.True(t, ok)
	assert.Equal(t, 17, d.ID)

	_, ok = reg.Item(1)
	assert.False(t, ok)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	_, err := inventory.NewRegistryFrom([]*inventory.ItemDef{
		{ID: 17, Name: "Cracked bat", Kind: inventory.KindEquipment},
		{ID: 17, Name: "Other", Kind: inventory.KindEquipment},
	})
	assert.Error(t, err)

	_, err = inventory.NewRegistryFrom([]*inventory.ItemDef{
		{ID: 17, Name: "Cookie", Kind: inventory.KindConsumable},
		{ID: 18, Name: "cookie", Kind: inventory.KindConsumable},
	})
	assert.Error(t, err)
}

package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveButtonNaming(t *testing.T) {
	assert.Equal(t, ID("remove_12"), RemoveButton(12))

	n, ok := ParseRemoveButton(RemoveButton(12))
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	for _, id := range []ID{Send, "remove_", "remove_x", "12"} {
		_, ok := ParseRemoveButton(id)
		assert.False(t, ok, "%q should not parse as a remove control", id)
	}
}

func TestCatalogEntryNaming(t *testing.T) {
	assert.Equal(t, ID("7"), CatalogEntry(7))

	n, ok := ParseCatalogEntry("7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ParseCatalogEntry(Add)
	assert.False(t, ok)
}

func TestFixedIdentities(t *testing.T) {
	assert.Equal(t, ID("list"), Catalog)
	assert.Equal(t, ID("selected"), Selection)
	assert.Equal(t, ID("order"), Order)
	assert.Equal(t, ID("amount"), Amount)
	assert.Equal(t, ID("add"), Add)
	assert.Equal(t, ID("name"), Name)
	assert.Equal(t, ID("zip"), Zip)
	assert.Equal(t, ID("send"), Send)

	assert.True(t, IsTextInput(Amount))
	assert.True(t, IsTextInput(Zip))
	assert.False(t, IsTextInput(Send))
	assert.False(t, IsTextInput(RemoveButton(1)))
}

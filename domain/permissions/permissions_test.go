package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	p, ok := Parse("READ")
	assert.True(t, ok)
	assert.Equal(t, Read, p)

	p, ok = Parse(" write ")
	assert.True(t, ok)
	assert.Equal(t, Write, p)

	_, ok = Parse("ADMIN")
	assert.False(t, ok)

	_, ok = Parse("")
	assert.False(t, ok)
}

func TestNormalizeValues_MixedShapes(t *testing.T) {
	// Stored permission values arrive as plain strings or encoded wrappers,
	// sometimes mixed in one list.
	set := NormalizeValues([]interface{}{
		"READ",
		map[string]interface{}{"S": "WRITE"},
	})
	assert.True(t, set.Contains(Read))
	assert.True(t, set.Contains(Write))
}

func TestNormalizeValues_DropsMalformedEntries(t *testing.T) {
	set := NormalizeValues([]interface{}{
		"READ",
		42,
		map[string]interface{}{"N": "1"},
		map[string]interface{}{"S": "NONSENSE"},
		nil,
	})
	assert.Len(t, set, 1)
	assert.True(t, set.Contains(Read))
}

func TestAllows_WriteImpliesRead(t *testing.T) {
	writeOnly := NewSet(Write)
	assert.True(t, writeOnly.Allows(Read))
	assert.True(t, writeOnly.Allows(Write))

	readOnly := NewSet(Read)
	assert.True(t, readOnly.Allows(Read))
	assert.False(t, readOnly.Allows(Write))

	empty := NewSet()
	assert.False(t, empty.Allows(Read))
	assert.False(t, empty.Allows(Write))
}

func TestStrings_StableOrder(t *testing.T) {
	assert.Equal(t, []string{"READ", "WRITE"}, NewSet(Write, Read).Strings())
	assert.Equal(t, []string{"WRITE"}, NewSet(Write).Strings())
	assert.Empty(t, NewSet().Strings())
}

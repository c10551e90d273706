package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Document {
	t.Helper()
	doc, err := Parse([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "not json", `{"courses": `} {
		doc, err := Parse([]byte(input))
		assert.ErrorIs(t, err, ErrInvalidJSON, "input %q", input)
		assert.True(t, doc.Courses().IsNull(), "input %q", input)
	}
}

func TestEmpty(t *testing.T) {
	doc := Empty()
	assert.True(t, doc.Root().IsObject())
	assert.True(t, doc.Meta().IsNull())
	assert.True(t, doc.Courses().IsNull())
	assert.False(t, doc.Courses().IsObject())
}

func TestGet_Nested(t *testing.T) {
	doc := mustParse(t, `{"meta": {"ref_title": "Test Restaurant", "count": 3}}`)

	title, ok := doc.Meta().Get("ref_title").String()
	require.True(t, ok)
	assert.Equal(t, "Test Restaurant", title)

	_, ok = doc.Meta().Get("count").String()
	assert.False(t, ok, "numbers are not strings")

	assert.False(t, doc.Meta().Get("missing").Exists())
	assert.False(t, doc.Courses().Exists())
	assert.Equal(t, "fallback", doc.Courses().Get("x").Get("y").StringOr("fallback"))
}

func TestGet_OnNonObject(t *testing.T) {
	doc := mustParse(t, `{"meta": "just a string", "courses": [1, 2]}`)

	assert.False(t, doc.Meta().Get("ref_title").Exists())
	assert.False(t, doc.Courses().IsObject())
	_, ok := doc.Courses().Entries()
	assert.False(t, ok)
}

func TestRootNotObject(t *testing.T) {
	doc := mustParse(t, `[{"courses": {}}]`)
	assert.False(t, doc.Courses().Exists())
	assert.False(t, doc.Meta().Exists())
}

func TestZeroValue(t *testing.T) {
	var v Value
	assert.False(t, v.Exists())
	assert.False(t, v.IsNull())
	assert.False(t, v.IsObject())
	assert.False(t, v.Get("a").Exists())
	_, ok := v.String()
	assert.False(t, ok)
	_, ok = v.Entries()
	assert.False(t, ok)

	var d Document
	assert.False(t, d.Courses().Exists())
}

func TestEntries_DocumentOrder(t *testing.T) {
	doc := mustParse(t, `{"courses": {"3": {"title_fi": "c"}, "1": {"title_fi": "a"}, "2": "skip", "10": {"title_fi": "d"}}}`)

	entries, ok := doc.Courses().Entries()
	require.True(t, ok)
	require.Len(t, entries, 4)

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"3", "1", "2", "10"}, keys)

	assert.Equal(t, "c", entries[0].Value.Get("title_fi").StringOr(""))
	assert.False(t, entries[2].Value.IsObject())
	assert.Equal(t, "d", entries[3].Value.Get("title_fi").StringOr(""))
}

func TestString_Unescapes(t *testing.T) {
	doc := mustParse(t, `{"meta": {"ref_title": "Café \"Lounas\""}}`)
	assert.Equal(t, `Café "Lounas"`, doc.Meta().Get("ref_title").StringOr(""))
}

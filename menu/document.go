// Package menu wraps the provider's menu response as a loosely-typed JSON
// document. Every accessor reports absence instead of failing, so callers
// pick their own fallback values.
package menu

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// ErrInvalidJSON is returned by Parse for input that is not a JSON document.
var ErrInvalidJSON = errors.New("invalid menu JSON")

// DateLayout renders a menu date, both in the request URL and the message header.
const DateLayout = "2006-01-02"

const emptyDocument = `{"meta":null,"courses":null}`

// Document is one day's menu response.
type Document struct {
	root Value
}

// Value is a node inside a Document. The zero Value is absent.
type Value struct {
	node *ast.Node
}

// Entry is one member of a JSON object.
type Entry struct {
	Key   string
	Value Value
}

// Parse decodes a menu response. No schema is enforced: any valid JSON
// document is accepted verbatim.
func Parse(data []byte) (Document, error) {
	if !sonic.ConfigStd.Valid(data) {
		return Empty(), ErrInvalidJSON
	}
	root, err := sonic.Get(data)
	if err != nil {
		return Empty(), errors.Join(ErrInvalidJSON, err)
	}
	return Document{root: Value{node: &root}}, nil
}

// Empty returns the placeholder document used when a fetch fails.
func Empty() Document {
	root, err := sonic.GetFromString(emptyDocument)
	if err != nil {
		return Document{}
	}
	return Document{root: Value{node: &root}}
}

// Root returns the top-level value.
func (d Document) Root() Value { return d.root }

// Meta returns the "meta" member.
func (d Document) Meta() Value { return d.root.Get("meta") }

// Courses returns the "courses" member.
func (d Document) Courses() Value { return d.root.Get("courses") }

func (v Value) kind() int {
	if v.node == nil {
		return ast.V_NONE
	}
	return v.node.Type()
}

// Exists reports whether the value is present in the document. JSON null
// counts as present.
func (v Value) Exists() bool {
	k := v.kind()
	return k != ast.V_NONE && k != ast.V_ERROR
}

// IsNull reports whether the value is an explicit JSON null.
func (v Value) IsNull() bool { return v.kind() == ast.V_NULL }

// IsObject reports whether the value is a JSON object.
func (v Value) IsObject() bool { return v.kind() == ast.V_OBJECT }

// Get returns the named member of an object. It is absent when v is not an
// object or has no such member.
func (v Value) Get(key string) Value {
	if !v.IsObject() {
		return Value{}
	}
	n := v.node.Get(key)
	if n == nil {
		return Value{}
	}
	return Value{node: n}
}

// String returns the value if it is a JSON string.
func (v Value) String() (string, bool) {
	if v.kind() != ast.V_STRING {
		return "", false
	}
	s, err := v.node.String()
	if err != nil {
		return "", false
	}
	return s, true
}

// StringOr returns the string value, or fallback when v is absent or not a string.
func (v Value) StringOr(fallback string) string {
	if s, ok := v.String(); ok {
		return s
	}
	return fallback
}

// Entries returns the members of an object in document order.
func (v Value) Entries() ([]Entry, bool) {
	if !v.IsObject() {
		return nil, false
	}
	it, err := v.node.Properties()
	if err != nil {
		return nil, false
	}

	var entries []Entry
	var p ast.Pair
	for it.Next(&p) {
		n := p.Value
		entries = append(entries, Entry{Key: p.Key, Value: Value{node: &n}})
	}
	return entries, true
}

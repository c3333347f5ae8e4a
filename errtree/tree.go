package errtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tree is a validation failure report: either a leaf message or an ordered
// set of entries keyed by property name (string) or collection index (int).
type Tree struct {
	message string
	entries []Entry
}

// Entry is one keyed branch of a Tree.
type Entry struct {
	Key   any
	Value Tree
}

// Leaf returns a tree holding a single message.
func Leaf(message string) Tree {
	return Tree{message: message}
}

// Flatten converts a violation into a tree. Children are keyed by their
// property name, then by their index, then by "$" + rule name. On a key
// collision the first child wins.
func Flatten(v *Violation) Tree {
	if v == nil {
		return Tree{}
	}

	if v.IsLeaf() {
		return Leaf(v.Message)
	}

	var t Tree
	for _, r := range v.Related {
		key := entryKey(r)
		if t.Has(key) {
			continue
		}

		t.entries = append(t.entries, Entry{Key: key, Value: Flatten(r)})
	}

	return t
}

func entryKey(v *Violation) any {
	switch {
	case v.Key != "":
		return v.Key
	case v.Index >= 0:
		return v.Index
	default:
		return "$" + v.Rule
	}
}

// IsLeaf reports whether the tree is a single message.
func (t Tree) IsLeaf() bool {
	return t.entries == nil
}

// Message returns the leaf message, empty for branch trees.
func (t Tree) Message() string {
	return t.message
}

// Len returns the number of top-level entries.
func (t Tree) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the top-level entries in order.
func (t Tree) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Keys returns the top-level keys in order.
func (t Tree) Keys() []any {
	keys := make([]any, 0, len(t.entries))
	for _, e := range t.entries {
		keys = append(keys, e.Key)
	}

	return keys
}

// Has reports whether a top-level entry with the given key exists.
func (t Tree) Has(key any) bool {
	_, ok := t.Get(key)
	return ok
}

// Get returns the subtree stored under key.
func (t Tree) Get(key any) (Tree, bool) {
	for _, e := range t.entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return Tree{}, false
}

// With returns a copy of the tree with key set to sub. An existing entry
// keeps its position.
func (t Tree) With(key any, sub Tree) Tree {
	entries := make([]Entry, 0, len(t.entries)+1)
	replaced := false

	for _, e := range t.entries {
		if e.Key == key {
			e.Value = sub
			replaced = true
		}

		entries = append(entries, e)
	}

	if !replaced {
		entries = append(entries, Entry{Key: key, Value: sub})
	}

	return Tree{entries: entries}
}

// Plain converts the tree into nested map[any]any values with string
// leaves. Useful for comparisons.
func (t Tree) Plain() any {
	if t.IsLeaf() {
		return t.message
	}

	m := make(map[any]any, len(t.entries))
	for _, e := range t.entries {
		m[e.Key] = e.Value.Plain()
	}

	return m
}

// MarshalJSON renders leaves as strings and branches as objects in entry
// order. Integer keys become decimal strings.
func (t Tree) MarshalJSON() ([]byte, error) {
	if t.IsLeaf() {
		return json.Marshal(t.message)
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(keyString(e.Key))
		if err != nil {
			return nil, err
		}

		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// String returns a flat "path: message" listing joined by "; ".
func (t Tree) String() string {
	var lines []string
	t.collect("", &lines)

	return strings.Join(lines, "; ")
}

func (t Tree) collect(prefix string, lines *[]string) {
	if t.IsLeaf() {
		if prefix == "" {
			*lines = append(*lines, t.message)
		} else {
			*lines = append(*lines, prefix+": "+t.message)
		}

		return
	}

	for _, e := range t.entries {
		var path string

		switch k := e.Key.(type) {
		case int:
			path = prefix + "[" + strconv.Itoa(k) + "]"
		default:
			if prefix == "" {
				path = keyString(k)
			} else {
				path = prefix + "." + keyString(k)
			}
		}

		e.Value.collect(path, lines)
	}
}

func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	default:
		return fmt.Sprint(k)
	}
}

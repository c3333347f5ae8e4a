// Package schema declares the properties of a struct type.
//
// A Prop carries everything known about one property: its validator,
// whether it is required, its default value, the mapping rule for each
// data source and free-form metadata. A Schema is an ordered set of props.
// Both are immutable; builders return modified copies.
package schema

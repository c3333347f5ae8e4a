// Package errtree aggregates nested rule failures into a keyed tree.
//
// A Violation is what a rule returns when it rejects a value; composite
// rules nest the violations of their children. Flatten turns a violation
// into a Tree mirroring the shape of the rejected data: property names and
// collection indexes become keys, messages become leaves.
package errtree

// Package structs implements immutable, schema-validated struct values.
//
// A Type pairs a name with a schema.Schema. Instances are built only
// through validation:
//
//  1. keys not declared in the schema are rejected, each one reported;
//  2. required properties with a default that are absent get the default;
//  3. every property is checked by its validator, the Hydrated
//     placeholder always passes and missing optional properties are fine;
//  4. all failures are returned together as an *errtree.ValidationError.
//
// Set and Delete re-run the same pipeline and return a new instance.
// MapFrom reads the data through the per-source mappers of each property
// first. Project and MarshalJSON emit the properties in schema order,
// skipping Hydrated placeholders and whatever the type's Serializer
// excludes.
package structs

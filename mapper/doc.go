// Package mapper extracts values from external data.
//
// A Source wraps the data (maps, structs, raw JSON); a Rule reads from a
// source and yields one value or reports it missing. From builds the
// common rule: read a field, then run it through steps such as Trim,
// Default or As:
//
//	mapper.From("profile.name").Trim().Default("John Doe")
//	mapper.From("birthday").As(primitive.KindTime, primitive.CategoryDatetime)
package mapper

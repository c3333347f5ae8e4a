// Package primitive converts scalar values between Go kinds.
//
// Conversions are grouped into categories (textual numbers, timestamps,
// durations, ...) so callers opt in to exactly the conversions they accept.
package primitive

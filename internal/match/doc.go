// Package match ranks identifiers by similarity.
//
// Names are normalized (case-folded, separators removed, CamelCase
// tokenized) and compared with a rune-wise Levenshtein distance. The
// ranking backs "did you mean" hints for undeclared properties and
// unknown validator or transform names.
package match

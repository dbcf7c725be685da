// Package suggest ranks known names by similarity to a misspelled one. It
// backs the "did you mean" hints attached to unknown type names in
// descriptors and unknown keys in option strings.
//
// Key functions:
//   - Normalize: folds an identifier for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank: scores every known name against a query
//   - Suggest: returns the close matches, best first
package suggest

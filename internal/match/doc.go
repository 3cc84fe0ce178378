// Package match ranks near-miss names for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: folds identifiers and module paths for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity to a target
//   - Suggest: picks a single confident suggestion, if any
package match

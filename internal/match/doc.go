// Package match provides identifier normalization, Levenshtein distance,
// scalar kind compatibility and candidate ranking for field correction.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for separator/case-insensitive matching
//   - Levenshtein: computes edit distance between strings
//   - ConfidenceFromDistance: maps a distance to a correction confidence
//   - ScoreScalar: checks a raw scalar against an expected kind and proposes a rewrite
//   - RankCandidates: ranks known field names for an unknown key
package match

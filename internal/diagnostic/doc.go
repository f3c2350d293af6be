// Package diagnostic provides structured, line-addressed problem reports
// for repaired and validated documents.
//
// Key capabilities:
//   - Severity levels from info to critical
//   - Stable snake_case codes for machine consumers
//   - Fixable flag plus the proposed replacement text
package diagnostic

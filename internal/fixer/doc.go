// Package fixer repairs malformed Kubernetes-flavored YAML.
//
// A fix runs in stages:
//
//  1. Normalize: tabs in indentation are expanded and trailing whitespace
//     is stripped.
//  2. The text is split into documents at "---" lines; each document is
//     repaired on its own.
//  3. Detection passes run over a semantic tree of the document. Their
//     suggestions are filtered by confidence and applied to the text,
//     then the text is parsed. This repeats until the document parses
//     with nothing left to apply, or MaxIterations is reached.
//  4. A document that still does not parse goes through indentation
//     snapping and a line-level fallback. If that does not help, the
//     best-effort text is returned with a critical parse_error.
//  5. In aggressive mode, fields found at the wrong level of a parsed
//     manifest are moved to their canonical parent and the document is
//     re-serialized.
//
// Fixing never fails: every problem is reported in Result.Errors.
package fixer

// Package semantic classifies the lines of possibly broken YAML and links
// them into a tree using indentation alone, so that repair passes can
// reason about structure without a successful parse.
package semantic

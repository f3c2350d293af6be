// Package main provides the CLI entrypoint for yaml-fixer.
//
// yaml-fixer repairs malformed Kubernetes manifests:
//   - fix: repair files in place or from stdin, with a per-change report
//   - validate: report problems without modifying anything
//   - indent: normalize or detect indentation
//   - serve: expose fix and validate over HTTP
//   - watch: refix files under a directory as they change
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}

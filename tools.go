//go:build tools
// +build tools

// Package tools pins developer-tool versions so `go install` resolves them
// from this module's go.sum instead of drifting with the toolchain.
package tools

import (
	_ "github.com/dkorunic/betteralign/cmd/betteralign"
	_ "honnef.co/go/tools/cmd/staticcheck"
)

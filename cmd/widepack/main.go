// widepack packs pairs of text characters into single wide code points and
// unpacks them again.
//
// Usage:
//
//	widepack -s <text> | -f <file> [-d] [-o <file>]
//	widepack inspect -s <text> | -f <file>
//	widepack check <scenarios-dir>
//	widepack history --journal <db>
//
// Run "widepack --help" for the full flag list.
package main

import (
	"os"

	"github.com/roach88/widepack/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

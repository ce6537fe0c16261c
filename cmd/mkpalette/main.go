// mkpalette - convert hex colours into a C palette table
//
// mkpalette turns a list of #RRGGBB colours into a static int array
// initializer for inclusion in C source.
package main

import (
	"os"

	"github.com/jmylchreest/mkpalette/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

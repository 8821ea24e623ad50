// Command pstcrypt decodes and encodes the block obfuscation of PST/OST files.
package main

import (
	"errors"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gogen/pkg/printer"
	"github.com/idelchi/pstcrypt/internal/commands"
	"github.com/idelchi/pstcrypt/internal/config"
)

// version is set with -ldflags at build time.
var version = "unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			os.Exit(0)
		}

		printer.Stderrln("error: %v", err)

		os.Exit(1)
	}
}

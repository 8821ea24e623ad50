// Package commands provides the command-line interface for the pstcrypt tool.
//
// It implements commands for:
//   - decoding
//   - encoding
//   - printing the permutation tables
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/pstcrypt/internal/config"
	"github.com/idelchi/pstcrypt/internal/logging"
	"github.com/idelchi/pstcrypt/internal/logic"
)

// preRun returns a PreRunE handler that sets the direction, resolves
// positional args into cfg.Files and validates the configuration.
func preRun(cfg *config.Config, encode bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Encode = encode

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cobraext.Validate(cfg, cfg)
	}
}

// run hands the validated configuration to the processing logic.
func run(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		logger := logging.New("pstcrypt", cfg.Level, cfg.JSON, os.Stderr)

		return logic.Run(cfg, logger)
	}
}

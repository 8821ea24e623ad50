package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pstcrypt/internal/config"
)

// NewDecodeCommand creates a new cobra command for the decode subcommand.
func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decode [flags] [paths...]",
		Aliases: []string{"dec", "decrypt"},
		Short:   "Decode obfuscated PST/OST data",
		Long: `Decode reverses the block obfuscation of the given files.
Directories are walked; without --include only files ending in the encode suffix are taken.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, false),
		RunE:    run(cfg),
	}
}

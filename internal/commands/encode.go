package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pstcrypt/internal/config"
)

// NewEncodeCommand creates a new cobra command for the encode subcommand.
func NewEncodeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encode [flags] paths...",
		Aliases: []string{"enc", "encrypt"},
		Short:   "Apply PST/OST block obfuscation",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE:    run(cfg),
	}
}

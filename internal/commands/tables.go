package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pstcrypt/internal/logic"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

// NewTablesCommand creates a new cobra command printing the permutation tables.
func NewTablesCommand() *cobra.Command {
	var inverse bool

	cmd := &cobra.Command{
		Use:       "tables [names...]",
		Short:     "Print the permutation tables",
		Args:      cobra.OnlyValidArgs,
		ValidArgs: pstcrypt.TableNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return logic.RunTables(cmd.OutOrStdout(), args, inverse)
		},
	}

	cmd.Flags().BoolVarP(&inverse, "inverse", "i", false, "Print the encoding direction of each table")

	return cmd
}

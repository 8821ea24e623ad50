package logic

import (
	"fmt"
	"io"

	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

// RunTables writes the named permutation tables as rows of 16 hex bytes.
// Without names all tables are written.
func RunTables(w io.Writer, names []string, inverse bool) error {
	if len(names) == 0 {
		names = pstcrypt.TableNames
	}

	for i, name := range names {
		table, err := pstcrypt.Table(name, inverse)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		title := name
		if inverse {
			title += " (inverse)"
		}

		fmt.Fprintf(w, "%s:\n", title)

		const rowSize = 16

		for row := 0; row < len(table); row += rowSize {
			fmt.Fprintf(w, "  %02x: % x\n", row, table[row:row+rowSize])
		}
	}

	return nil
}

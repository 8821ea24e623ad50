package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/pstcrypt/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Every flag can also be set through an environment variable prefixed with the
// command name, e.g. PSTCRYPT_KEY.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "pstcrypt [flags] command [flags]"
	root.Short = "PST/OST block obfuscation utility"
	root.Long = `Decode and encode the block obfuscation of Personal Storage Table files.
Supports the none, compressible (permute) and high (cyclic) modes.`

	flags := root.PersistentFlags()

	flags.StringP("mode", "m", "", "Obfuscation mode: none, compressible or high")
	flags.StringP("key", "k", "0", "32-bit block key, decimal or 0x-prefixed hex")
	flags.StringP("block-size", "b", "", "Split files into independent blocks of this size, e.g. 512 or 8KiB")
	flags.String("manifest", "", "JSONC file listing the regions to transform")
	flags.StringSlice("include", nil,
		"Glob selecting files inside directories; with a slash it matches the relative path, e.g. nested/*.pst")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("delete", false, "Delete the original file after successful processing")
	flags.Bool("dry", false, "Show which files would be processed without writing anything")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of inputs to outputs")
	flags.BoolP("show", "s", false, "Show the configuration and exit")

	flags.String("encode-ext", ".enc", "Suffix to append to encoded files")
	flags.String("decode-ext", ".dec", "Suffix to append to decoded files, after stripping the encode suffix")

	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error or off")
	flags.Bool("log-json", false, "Write logs as JSON")

	root.AddCommand(NewDecodeCommand(cfg), NewEncodeCommand(cfg), NewTablesCommand())

	return root
}

package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/pstcrypt/internal/config"
	"github.com/idelchi/pstcrypt/internal/fileutil"
	"github.com/idelchi/pstcrypt/internal/manifest"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

// Processor handles the decoding and encoding of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// log receives per-block diagnostics
	log hclog.Logger

	// regions is the parsed manifest, if any
	regions []manifest.Region

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a Processor for a validated configuration.
func NewProcessor(cfg *config.Config, logger hclog.Logger) (*Processor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	processor := &Processor{
		cfg:     cfg,
		log:     logger,
		results: make(chan Result, len(cfg.Files)),
	}

	if cfg.Manifest != "" {
		regions, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, fmt.Errorf("loading manifest: %w", err)
		}

		processor.regions = regions
	} else if err := cfg.Resolved.Mode.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return processor, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It returns the number of successfully processed files, the number of errors
// and the total size of the written outputs.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			p.log.Debug("file done", "input", result.Input, "blocks", result.Blocks, "size", result.OutputSize)

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			size, blocks, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size, Blocks: blocks}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile transforms a single file into a temporary file and renames it onto outPath.
func (p *Processor) processFile(filename, outPath string) (size int64, blocks int, err error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, 0, fmt.Errorf("%w: %q", ErrSameOutput, outPath)
	}

	out, err := fileutil.Create(filename, outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer out.Discard()

	switch {
	case p.regions != nil:
		blocks, err = p.transformFile(filename, out, p.transformRegions)
	case p.cfg.Resolved.BlockSize > 0:
		blocks, err = p.transformFile(filename, out, p.transformBlocks)
	default:
		blocks, err = 1, p.transformStream(filename, out)
	}

	if err != nil {
		return 0, 0, err
	}

	size, err = out.Commit(p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, 0, fmt.Errorf("committing output: %w", err)
	}

	return size, blocks, nil
}

// transformFile loads filename into memory, applies fn to it and writes the result to out.
func (p *Processor) transformFile(filename string, out *fileutil.Output, fn func([]byte) (int, error)) (int, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	blocks, err := fn(data)
	if err != nil {
		return 0, err
	}

	if _, err := out.Write(data); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	return blocks, nil
}

// transform applies the configured direction to a single block.
func (p *Processor) transform(mode pstcrypt.Mode, key uint32, block []byte) error {
	var (
		n   int
		err error
	)

	if p.cfg.Encode {
		n, err = pstcrypt.Encode(mode, key, block, len(block))
	} else {
		n, err = pstcrypt.Decode(mode, key, block, len(block))
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	if n != len(block) {
		return fmt.Errorf("%w: %d of %d bytes", ErrUnexpectedSize, n, len(block))
	}

	return nil
}

// OutputPath generates the output file path based on the input filename
// and the configured suffixes.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encoded

	if !cfg.Encode {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encoded)
		ext = cfg.Suffixes.Decoded
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

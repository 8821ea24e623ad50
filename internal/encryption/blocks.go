package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/pstcrypt/internal/manifest"
	"github.com/idelchi/pstcrypt/pkg/pstcrypt"
)

// split partitions data into consecutive blocks of size bytes. The last block may be shorter.
func split(data []byte, size int) [][]byte {
	blocks := make([][]byte, 0, (len(data)+size-1)/size)

	for len(data) > size {
		blocks = append(blocks, data[:size:size])
		data = data[size:]
	}

	if len(data) > 0 {
		blocks = append(blocks, data)
	}

	return blocks
}

// transformBlocks applies the configured mode and key to every fixed-size block of data.
// Each block restarts the salt, so blocks are independent and run concurrently.
func (p *Processor) transformBlocks(data []byte) (int, error) {
	blocks := split(data, p.cfg.Resolved.BlockSize)

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	for i, block := range blocks {
		group.Go(func() error {
			if err := p.transform(p.cfg.Resolved.Mode, p.cfg.Resolved.Key, block); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, err //nolint:wrapcheck
	}

	p.log.Trace("blocks transformed", "count", len(blocks), "size", p.cfg.Resolved.BlockSize,
		"mode", p.cfg.Resolved.Mode)

	return len(blocks), nil
}

// transformRegions applies each manifest region with its own mode and key.
// Bytes outside the regions are left as they are.
func (p *Processor) transformRegions(data []byte) (int, error) {
	if err := manifest.Check(p.regions, int64(len(data))); err != nil {
		return 0, err //nolint:wrapcheck
	}

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	for _, region := range p.regions {
		group.Go(func() error {
			block := data[region.Offset:region.End()]

			if err := p.transform(region.Mode, region.Key, block); err != nil {
				return fmt.Errorf("region at offset %d: %w", region.Offset, err)
			}

			p.log.Trace("region transformed", "offset", region.Offset, "size", region.Size,
				"mode", region.Mode, "key", fmt.Sprintf("%#08x", region.Key))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(p.regions), nil
}

// transformStream treats the whole file as one block and streams it through
// a salt-carrying reader or writer.
func (p *Processor) transformStream(filename string, out io.Writer) error {
	in, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	var (
		reader io.Reader = in
		writer           = out
	)

	if p.cfg.Encode {
		writer, err = pstcrypt.NewWriter(out, p.cfg.Resolved.Mode, p.cfg.Resolved.Key)
	} else {
		reader, err = pstcrypt.NewReader(in, p.cfg.Resolved.Mode, p.cfg.Resolved.Key)
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	bufp, ok := bufferPool.Get().(*[]byte)
	if !ok {
		return errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(bufp)

	buf := *bufp

	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			if _, err := writer.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}

	if err := in.Close(); err != nil {
		return fmt.Errorf("closing input file: %w", err)
	}

	return nil
}

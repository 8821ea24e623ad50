// Package encryption decodes and encodes PST/OST files with the block
// obfuscation of package pstcrypt.
// Files are processed concurrently and written atomically. A file is treated as
// one block, as a sequence of fixed-size blocks, or as the regions of a manifest.
package encryption

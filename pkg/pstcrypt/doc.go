// Package pstcrypt implements the block obfuscation used by Personal Storage Table
// (PST/OST) files.
//
// Pages of a PST file are stored in one of three modes:
//   - none: the bytes are stored as-is
//   - compressible: every byte is substituted through a fixed permutation
//   - high: every byte passes through three permutations, salted by a 16-bit
//     value derived from the block key and advanced once per byte
//
// The transform is not encryption in any meaningful sense. It exists to reproduce
// the legacy byte layout exactly, so that the B-tree pages, allocation maps and
// item records of a file can be parsed after decoding.
//
// Decode and Encode mutate a buffer in place and validate their arguments before
// touching a single byte. Cipher, NewReader and NewWriter carry the salt across
// chunks for callers that stream a block.
package pstcrypt

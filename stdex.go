package stdex

import (
	"github.com/zeebo/xxh3"

	"github.com/stdex/stdex/buffer"
)

// ByteBuffer and RuneBuffer are the instantiations used most often
// when shuttling blocks to and from foreign APIs.
type (
	ByteBuffer = buffer.T[byte]
	RuneBuffer = buffer.T[rune]
)

// Digest hashes a byte buffer's live contents. Two buffers that are
// Equal digest identically regardless of capacity.
func Digest(b *ByteBuffer) uint64 { return xxh3.Hash(b.Prefix()) }

package stdex

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/xxh3"

	"github.com/stdex/stdex/buffer"
)

func TestDigest(t *testing.T) {
	b := buffer.From([]byte("hello world"))
	assert.Equal(t, Digest(&b), xxh3.Hash([]byte("hello world")))

	// spare capacity never leaks into the digest
	c := buffer.FromCap([]byte("hello world"), 32)
	assert.Equal(t, Digest(&c), Digest(&b))

	var e ByteBuffer
	assert.Equal(t, Digest(&e), xxh3.Hash(nil))
}

func TestRuneBuffer(t *testing.T) {
	var b RuneBuffer
	b.Append([]rune("héllo")...)
	assert.Equal(t, b.Len(), 5)
	assert.Equal(t, string(b.Prefix()), "héllo")
}

package mesh

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Decompressor expands one compressed block into a buffer of a known
// size. Implementations are stateless; a short or oversized result is an
// error, never a partial success.
type Decompressor interface {
	Decompress(src []byte, uncompressedSize int) ([]byte, error)
}

// LZ4Decompressor decodes raw LZ4 blocks (the framing-free variant the
// asset pipeline emits). It is the production Decompressor.
type LZ4Decompressor struct{}

// Decompress expands src into a buffer of exactly uncompressedSize bytes.
func (LZ4Decompressor) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive declared size %d", ErrDecompressionFailed, uncompressedSize)
	}
	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	if n != uncompressedSize {
		return nil, fmt.Errorf("%w: block expanded to %d bytes, header declared %d", ErrDecompressionFailed, n, uncompressedSize)
	}
	return dst, nil
}

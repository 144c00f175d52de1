package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/veilbreaker/skymesh/pkg/math"
)

// fmt_mesh container layout. The outer file is a fixed header followed
// by one LZ4 block; the decompressed block is a flat heap addressed by
// offsets into itself (the container stores internal "pointers" as
// 32-bit heap offsets, not absolute addresses).
const (
	fmtMeshBoneFlagOff   = 76 // uint16, 1 when bone data follows the block
	fmtMeshCompSizeOff   = 82 // uint32, compressed block size
	fmtMeshUncompSizeOff = 86 // uint32, decompressed heap size
	fmtMeshDataOff       = 90 // first byte of the LZ4 block

	heapVertexCountOff = 0x74
	heapIndexCountOff  = 0x78
	heapUVCountOff     = 0x80
	heapPayloadOff     = 0xB3

	heapVertexStride = 16 // x, y, z, w float32; w unused
	heapUVStride     = 16 // two halves, then extra channels
	heapWeightStride = 8  // per-vertex bone weights, skipped by length
)

// decodeFmtMesh handles files carrying the fmt_mesh signature. zipPos
// selects the 8-bit quantized position branch used by ZipPos variants.
func (d *Decoder) decodeFmtMesh(asset RawAsset, zipPos bool) (*DecodedMesh, error) {
	data := asset.Data
	if len(data) < fmtMeshDataOff {
		return nil, fmt.Errorf("%w: file shorter than fmt_mesh header", ErrUnsupportedHeader)
	}
	if !bytes.Equal(data[:len(fmtMeshSignature)], fmtMeshSignature) {
		return nil, fmt.Errorf("%w: fmt_mesh signature missing", ErrUnsupportedHeader)
	}

	hasBones := binary.LittleEndian.Uint16(data[fmtMeshBoneFlagOff:]) == 1
	compSize := int(int32(binary.LittleEndian.Uint32(data[fmtMeshCompSizeOff:])))
	uncompSize := int(int32(binary.LittleEndian.Uint32(data[fmtMeshUncompSizeOff:])))

	if compSize <= 0 || uncompSize <= 0 || uncompSize > maxUncompressedSize {
		return nil, fmt.Errorf("%w: implausible block sizes %d/%d", ErrUnsupportedHeader, compSize, uncompSize)
	}
	if fmtMeshDataOff+compSize > len(data) {
		return nil, fmt.Errorf("%w: compressed block extends past end of file", ErrUnsupportedHeader)
	}

	heap, err := d.codec.Decompress(data[fmtMeshDataOff:fmtMeshDataOff+compSize], uncompSize)
	if err != nil {
		return nil, err
	}
	if len(heap) < heapPayloadOff {
		return nil, fmt.Errorf("%w: heap smaller than its own header", ErrUnsupportedHeader)
	}

	vnum := int(int32(binary.LittleEndian.Uint32(heap[heapVertexCountOff:])))
	inum := int(int32(binary.LittleEndian.Uint32(heap[heapIndexCountOff:])))
	if vnum <= 0 || vnum > maxElementCount || inum <= 0 || inum > maxElementCount {
		return nil, fmt.Errorf("%w: counts %d vertices / %d indices outside sane range", ErrUnsupportedHeader, vnum, inum)
	}

	if zipPos {
		return fmtMeshZipPos(heap, vnum, inum, hasBones)
	}
	return fmtMeshClassic(heap, vnum, inum, hasBones)
}

// fmtMeshClassic reads the uncompressed-position layout: 16-byte vertex
// records, a count table, 16-byte UV records with half-precision
// coordinates, optional bone weights (skipped), then 16-bit indices.
func fmtMeshClassic(heap []byte, vnum, inum int, hasBones bool) (*DecodedMesh, error) {
	cur := heapPayloadOff

	if cur+vnum*heapVertexStride > len(heap) {
		return nil, fmt.Errorf("%w: vertex block extends past heap end", ErrUnsupportedHeader)
	}
	verts := make([]math.Vec3, vnum)
	for i := range verts {
		o := cur + i*heapVertexStride
		verts[i] = math.Vec3{
			X: gomath.Float32frombits(binary.LittleEndian.Uint32(heap[o:])),
			Y: gomath.Float32frombits(binary.LittleEndian.Uint32(heap[o+4:])),
			Z: gomath.Float32frombits(binary.LittleEndian.Uint32(heap[o+8:])),
		}
	}
	cur += vnum * heapVertexStride

	// Per-vertex lookup table between the blocks, not geometry.
	cur += vnum * 4

	if cur+vnum*heapUVStride > len(heap) {
		return nil, fmt.Errorf("%w: UV block extends past heap end", ErrUnsupportedHeader)
	}
	uvs := make([]math.Vec2, vnum)
	for i := range uvs {
		o := cur + i*heapUVStride
		uvs[i] = math.Vec2{
			X: halfToFloat(binary.LittleEndian.Uint16(heap[o:])),
			Y: halfToFloat(binary.LittleEndian.Uint16(heap[o+2:])),
		}
	}
	cur += vnum * heapUVStride

	if hasBones {
		// Weight data is only measured and skipped, never decoded.
		cur += vnum * heapWeightStride
	}

	indices, err := readFmtMeshIndices(heap, cur, inum)
	if err != nil {
		return nil, err
	}
	return &DecodedMesh{Vertices: verts, UVs: uvs, Indices: indices}, nil
}

// fmtMeshZipPos reads the quantized-position layout: 16-bit indices at
// the start of the payload and 4-byte position records at the very end
// of the heap, each axis normalized symmetrically to [-1, 1]. These
// variants carry no usable UV data.
func fmtMeshZipPos(heap []byte, vnum, inum int, hasBones bool) (*DecodedMesh, error) {
	cur := heapPayloadOff
	if hasBones {
		cur += vnum * heapWeightStride
	}

	indices, err := readFmtMeshIndices(heap, cur, inum)
	if err != nil {
		return nil, err
	}

	tail := len(heap) - vnum*4
	if tail < 0 {
		return nil, fmt.Errorf("%w: quantized vertex block larger than heap", ErrUnsupportedHeader)
	}
	verts := make([]math.Vec3, vnum)
	for i := range verts {
		o := tail + i*4
		// Byte 0 is padding; bytes 1..3 are the quantized axes.
		verts[i] = math.Vec3{
			X: DequantizeU8(heap[o+1]),
			Y: DequantizeU8(heap[o+2]),
			Z: DequantizeU8(heap[o+3]),
		}
	}

	return &DecodedMesh{
		Vertices: verts,
		UVs:      make([]math.Vec2, vnum),
		Indices:  indices,
	}, nil
}

// readFmtMeshIndices reads inum/3 triangle triples of 16-bit indices
// starting at off.
func readFmtMeshIndices(heap []byte, off, inum int) ([]uint32, error) {
	faceCount := inum / 3
	if faceCount <= 0 {
		return nil, fmt.Errorf("%w: no complete triangles declared", ErrUnsupportedHeader)
	}
	if off+faceCount*6 > len(heap) {
		return nil, fmt.Errorf("%w: index block extends past heap end", ErrUnsupportedHeader)
	}
	indices := make([]uint32, 0, faceCount*3)
	for i := 0; i < faceCount*3; i++ {
		indices = append(indices, uint32(binary.LittleEndian.Uint16(heap[off+i*2:])))
	}
	return indices, nil
}

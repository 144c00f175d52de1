package mesh

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/veilbreaker/skymesh/pkg/math"
)

// SizeCandidate is one candidate placement of the compressed-size and
// uncompressed-size header fields and the start of the LZ4 block. The
// true placement drifted across game builds, so candidates are tried in
// order until one validates.
type SizeCandidate struct {
	CompOff   int
	UncompOff int
	DataOff   int
	Width     int // bytes per size field: 4 or 2
}

// DefaultSizeCandidates lists the known placements, most common first.
var DefaultSizeCandidates = []SizeCandidate{
	{CompOff: 0x52, UncompOff: 0x56, DataOff: 0x5A, Width: 4},
	{CompOff: 0x4E, UncompOff: 0x51, DataOff: 0x56, Width: 2},
	{CompOff: 0x4E, UncompOff: 0x52, DataOff: 0x56, Width: 2},
	{CompOff: 0x4E, UncompOff: 0x50, DataOff: 0x56, Width: 2},
	{CompOff: 0x4C, UncompOff: 0x50, DataOff: 0x56, Width: 2},
}

// Decompressed-heap layout shared by the compressed variants.
const (
	compNewMarkerVtxOff = 0x34 // new layout: vertex count
	compNewMarkerIdxOff = 0x38 // new layout: index count
	compNewMinOff       = 0x40 // new layout: per-axis minimum, 3 x float32
	compNewRangeOff     = 0x4C // new layout: per-axis range, 3 x float32
	compNewVertexOff    = 0x60

	compOldMinOff    = 0x60 // old layout: minimum, 3 x float32
	compOldRangeOff  = 0x6C // old layout: range x and y; z reuses y
	compOldVtxCntOff = 0x74
	compOldIdxCntOff = 0x78
	compOldVertexOff = 0x7C

	compVertexStride = 6 // three 16-bit quantized axes
	compUVStride     = 4 // two 16-bit quantized coordinates
)

// decodeCompressed handles models whose positions are stored quantized
// behind an LZ4 block located by the size-candidate table.
func (d *Decoder) decodeCompressed(asset RawAsset, zipPos bool) (*DecodedMesh, error) {
	heap, err := d.inflateByCandidates(asset.Data)
	if err != nil {
		return nil, err
	}

	if zipPos {
		return decodeCompressedZipPos(heap)
	}

	// A plausible count pair in the low header words marks the newer
	// schema; anything else falls back to the old field placements.
	if len(heap) >= compNewVertexOff {
		vnum := int(int32(binary.LittleEndian.Uint32(heap[compNewMarkerVtxOff:])))
		inum := int(int32(binary.LittleEndian.Uint32(heap[compNewMarkerIdxOff:])))
		if vnum > 0 && vnum < 100000 && inum > 0 && inum < 300000 && inum%3 == 0 {
			return decodeCompressedNew(heap, vnum, inum)
		}
	}
	return decodeCompressedOld(heap)
}

// inflateByCandidates tries each size candidate in order and returns the
// first successfully decompressed heap.
func (d *Decoder) inflateByCandidates(data []byte) ([]byte, error) {
	for _, c := range d.sizeCandidates {
		compSize, uncompSize, ok := readSizePair(data, c)
		if !ok {
			continue
		}
		if compSize <= 0 || uncompSize <= 0 {
			continue
		}
		if compSize >= maxCompressedSize || uncompSize >= maxUncompressedSize {
			continue
		}
		// Compression assumption: the block must actually shrink.
		if uncompSize <= compSize {
			continue
		}
		if c.DataOff+compSize > len(data) {
			continue
		}
		heap, err := d.codec.Decompress(data[c.DataOff:c.DataOff+compSize], uncompSize)
		if err != nil {
			d.log.Debug("size candidate failed to decompress",
				zap.Int("comp_off", c.CompOff),
				zap.Int("data_off", c.DataOff),
				zap.Error(err))
			continue
		}
		return heap, nil
	}
	return nil, fmt.Errorf("%w: no size candidate validated", ErrDecompressionFailed)
}

// readSizePair reads the candidate's size fields in its declared width.
func readSizePair(data []byte, c SizeCandidate) (compSize, uncompSize int, ok bool) {
	if c.CompOff+c.Width > len(data) || c.UncompOff+c.Width > len(data) {
		return 0, 0, false
	}
	switch c.Width {
	case 4:
		compSize = int(int32(binary.LittleEndian.Uint32(data[c.CompOff:])))
		uncompSize = int(int32(binary.LittleEndian.Uint32(data[c.UncompOff:])))
	case 2:
		compSize = int(binary.LittleEndian.Uint16(data[c.CompOff:]))
		uncompSize = int(binary.LittleEndian.Uint16(data[c.UncompOff:]))
	default:
		return 0, 0, false
	}
	return compSize, uncompSize, true
}

// decodeCompressedNew reads the newer schema: counts in the marker
// words, explicit per-axis min/range, vertices at 0x60.
func decodeCompressedNew(heap []byte, vnum, inum int) (*DecodedMesh, error) {
	min := readVec3(heap, compNewMinOff)
	rng := readVec3(heap, compNewRangeOff)

	verts, err := readQuantizedVertices(heap, compNewVertexOff, vnum, min, rng)
	if err != nil {
		return nil, err
	}
	uvStart := compNewVertexOff + vnum*compVertexStride
	uvs := readQuantizedUVs(heap, uvStart, vnum)

	return finishCompressed(heap, uvStart+vnum*compUVStride, verts, uvs, inum)
}

// decodeCompressedOld reads the older schema: counts at 0x74/0x78,
// min at 0x60, range x/y at 0x6C/0x70 with the z range reusing y
// (never stored separately in this version).
func decodeCompressedOld(heap []byte) (*DecodedMesh, error) {
	if len(heap) < compOldVertexOff {
		return nil, fmt.Errorf("%w: heap smaller than old-layout header", ErrUnsupportedHeader)
	}
	vnum := int(int32(binary.LittleEndian.Uint32(heap[compOldVtxCntOff:])))
	inum := int(int32(binary.LittleEndian.Uint32(heap[compOldIdxCntOff:])))
	if vnum <= 0 || vnum > maxElementCount || inum <= 0 || inum > maxElementCount {
		return nil, fmt.Errorf("%w: counts %d/%d outside sane range", ErrUnsupportedHeader, vnum, inum)
	}

	min := readVec3(heap, compOldMinOff)
	rngX := readFloat32(heap, compOldRangeOff)
	rngY := readFloat32(heap, compOldRangeOff+4)
	rng := math.Vec3{X: rngX, Y: rngY, Z: rngY}

	verts, err := readQuantizedVertices(heap, compOldVertexOff, vnum, min, rng)
	if err != nil {
		return nil, err
	}
	uvStart := compOldVertexOff + vnum*compVertexStride
	uvs := readQuantizedUVs(heap, uvStart, vnum)

	return finishCompressed(heap, uvStart+vnum*compUVStride, verts, uvs, inum)
}

// decodeCompressedZipPos reads ZipPos variants: counts at the old-layout
// offsets, 8-bit quantized positions packed at the tail of the heap, no
// usable UVs, and the index array found by scanning.
func decodeCompressedZipPos(heap []byte) (*DecodedMesh, error) {
	if len(heap) < compOldVertexOff {
		return nil, fmt.Errorf("%w: heap smaller than old-layout header", ErrUnsupportedHeader)
	}
	vnum := int(int32(binary.LittleEndian.Uint32(heap[compOldVtxCntOff:])))
	inum := int(int32(binary.LittleEndian.Uint32(heap[compOldIdxCntOff:])))
	if vnum <= 0 || vnum > maxElementCount || inum <= 0 || inum > maxElementCount {
		return nil, fmt.Errorf("%w: counts %d/%d outside sane range", ErrUnsupportedHeader, vnum, inum)
	}

	tail := len(heap) - vnum*4
	if tail < 0 {
		return nil, fmt.Errorf("%w: quantized vertex block larger than heap", ErrUnsupportedHeader)
	}
	verts := make([]math.Vec3, vnum)
	for i := range verts {
		o := tail + i*4
		verts[i] = math.Vec3{
			X: DequantizeU8(heap[o+1]),
			Y: DequantizeU8(heap[o+2]),
			Z: DequantizeU8(heap[o+3]),
		}
	}

	return finishCompressed(heap, compOldVertexOff, verts, make([]math.Vec2, vnum), inum)
}

// finishCompressed locates the index array in the heap tail and
// assembles the mesh.
func finishCompressed(heap []byte, searchStart int, verts []math.Vec3, uvs []math.Vec2, inum int) (*DecodedMesh, error) {
	if searchStart > len(heap) {
		searchStart = len(heap)
	}
	indices, err := locateIndices(heap[searchStart:], len(verts), inum/3)
	if err != nil {
		return nil, err
	}
	return &DecodedMesh{Vertices: verts, UVs: uvs, Indices: indices}, nil
}

// readQuantizedVertices dequantizes vnum 6-byte vertex records.
func readQuantizedVertices(heap []byte, off, vnum int, min, rng math.Vec3) ([]math.Vec3, error) {
	if off+vnum*compVertexStride > len(heap) {
		return nil, fmt.Errorf("%w: vertex block extends past heap end", ErrUnsupportedHeader)
	}
	verts := make([]math.Vec3, vnum)
	for i := range verts {
		o := off + i*compVertexStride
		verts[i] = math.Vec3{
			X: DequantizeU16(binary.LittleEndian.Uint16(heap[o:]), min.X, rng.X),
			Y: DequantizeU16(binary.LittleEndian.Uint16(heap[o+2:]), min.Y, rng.Y),
			Z: DequantizeU16(binary.LittleEndian.Uint16(heap[o+4:]), min.Z, rng.Z),
		}
	}
	return verts, nil
}

// readQuantizedUVs decodes count 4-byte UV records onto [0, 1]. Records
// past the heap end stay zero: some variants truncate the UV block.
func readQuantizedUVs(heap []byte, off, count int) []math.Vec2 {
	uvs := make([]math.Vec2, count)
	for i := range uvs {
		o := off + i*compUVStride
		if o+compUVStride > len(heap) {
			break
		}
		uvs[i] = math.Vec2{
			X: DequantizeUnit16(binary.LittleEndian.Uint16(heap[o:])),
			Y: DequantizeUnit16(binary.LittleEndian.Uint16(heap[o+2:])),
		}
	}
	return uvs
}

func readVec3(heap []byte, off int) math.Vec3 {
	return math.Vec3{
		X: readFloat32(heap, off),
		Y: readFloat32(heap, off+4),
		Z: readFloat32(heap, off+8),
	}
}

func readFloat32(heap []byte, off int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(heap[off:]))
}

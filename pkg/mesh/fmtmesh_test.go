package mesh

import (
	"encoding/binary"
	"errors"
	gomath "math"
	"reflect"
	"testing"

	"github.com/veilbreaker/skymesh/pkg/math"
)

// stubCodec hands back a canned heap instead of decompressing, letting
// strategy tests build heaps directly without producing LZ4 blocks.
type stubCodec struct {
	heap []byte
}

func (s stubCodec) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize != len(s.heap) {
		return nil, errors.New("declared size does not match canned heap")
	}
	return s.heap, nil
}

// failingCodec rejects every block.
type failingCodec struct{}

func (failingCodec) Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	return nil, ErrDecompressionFailed
}

// fmtMeshFile wraps a heap in a minimal fmt_mesh container. The
// compressed block is filler; tests pair it with a stubCodec.
func fmtMeshFile(heapLen int, bones bool) []byte {
	const compSize = 16
	file := make([]byte, fmtMeshDataOff+compSize)
	copy(file, fmtMeshSignature)
	if bones {
		binary.LittleEndian.PutUint16(file[fmtMeshBoneFlagOff:], 1)
	}
	binary.LittleEndian.PutUint32(file[fmtMeshCompSizeOff:], compSize)
	binary.LittleEndian.PutUint32(file[fmtMeshUncompSizeOff:], uint32(heapLen))
	return file
}

// buildClassicHeap lays out a classic fmt_mesh heap: count fields,
// 16-byte vertex records, the per-vertex lookup table, 16-byte UV
// records with half-precision coordinates, optional weight block, then
// 16-bit indices.
func buildClassicHeap(verts []math.Vec3, uvHalves [][2]uint16, indices []uint16, bones bool) []byte {
	vnum := len(verts)
	size := heapPayloadOff + vnum*heapVertexStride + vnum*4 + vnum*heapUVStride + len(indices)*2
	if bones {
		size += vnum * heapWeightStride
	}
	heap := make([]byte, size)
	binary.LittleEndian.PutUint32(heap[heapVertexCountOff:], uint32(vnum))
	binary.LittleEndian.PutUint32(heap[heapIndexCountOff:], uint32(len(indices)))
	binary.LittleEndian.PutUint32(heap[heapUVCountOff:], uint32(vnum))

	cur := heapPayloadOff
	for _, v := range verts {
		binary.LittleEndian.PutUint32(heap[cur:], gomath.Float32bits(v.X))
		binary.LittleEndian.PutUint32(heap[cur+4:], gomath.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(heap[cur+8:], gomath.Float32bits(v.Z))
		cur += heapVertexStride
	}
	cur += vnum * 4
	for _, uv := range uvHalves {
		binary.LittleEndian.PutUint16(heap[cur:], uv[0])
		binary.LittleEndian.PutUint16(heap[cur+2:], uv[1])
		cur += heapUVStride
	}
	if bones {
		cur += vnum * heapWeightStride
	}
	for _, idx := range indices {
		binary.LittleEndian.PutUint16(heap[cur:], idx)
		cur += 2
	}
	return heap
}

func TestDecodeFmtMesh_Classic(t *testing.T) {
	verts := []math.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: 0, Z: 0.5},
		{X: 4, Y: 5, Z: 6},
	}
	uvs := [][2]uint16{
		{0x0000, 0x3C00}, // (0, 1)
		{0x3800, 0x3800}, // (0.5, 0.5)
		{0x3C00, 0x0000}, // (1, 0)
	}
	heap := buildClassicHeap(verts, uvs, []uint16{0, 1, 2}, false)

	d := NewDecoder(WithDecompressor(stubCodec{heap: heap}))
	m, err := d.decodeFmtMesh(RawAsset{Data: fmtMeshFile(len(heap), false), Name: "Prop"}, false)
	if err != nil {
		t.Fatalf("decodeFmtMesh failed: %v", err)
	}

	if !reflect.DeepEqual(m.Vertices, verts) {
		t.Errorf("got vertices %v, want %v", m.Vertices, verts)
	}
	wantUVs := []math.Vec2{{X: 0, Y: 1}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}}
	if !reflect.DeepEqual(m.UVs, wantUVs) {
		t.Errorf("got UVs %v, want %v", m.UVs, wantUVs)
	}
	if !reflect.DeepEqual(m.Indices, []uint32{0, 1, 2}) {
		t.Errorf("got indices %v", m.Indices)
	}
}

func TestDecodeFmtMesh_ClassicWithBones(t *testing.T) {
	verts := []math.Vec3{{X: 1}, {X: 2}, {X: 3}}
	uvs := [][2]uint16{{0, 0}, {0, 0}, {0, 0}}
	heap := buildClassicHeap(verts, uvs, []uint16{2, 1, 0}, true)

	d := NewDecoder(WithDecompressor(stubCodec{heap: heap}))
	m, err := d.decodeFmtMesh(RawAsset{Data: fmtMeshFile(len(heap), true), Name: "Skel"}, false)
	if err != nil {
		t.Fatalf("decodeFmtMesh failed: %v", err)
	}
	if !reflect.DeepEqual(m.Indices, []uint32{2, 1, 0}) {
		t.Errorf("weight block not skipped, got indices %v", m.Indices)
	}
}

func TestDecodeFmtMesh_ZipPos(t *testing.T) {
	const vnum, inum = 3, 3
	size := heapPayloadOff + inum*2 + vnum*4
	heap := make([]byte, size)
	binary.LittleEndian.PutUint32(heap[heapVertexCountOff:], vnum)
	binary.LittleEndian.PutUint32(heap[heapIndexCountOff:], inum)

	// Indices at the payload start.
	binary.LittleEndian.PutUint16(heap[heapPayloadOff:], 0)
	binary.LittleEndian.PutUint16(heap[heapPayloadOff+2:], 1)
	binary.LittleEndian.PutUint16(heap[heapPayloadOff+4:], 2)

	// Quantized positions at the heap tail: pad byte then three axes.
	tail := size - vnum*4
	copy(heap[tail:], []byte{
		0xFF, 0, 0, 0, // (-1, -1, -1)
		0xFF, 255, 255, 255, // (+1, +1, +1)
		0xFF, 0, 255, 0, // (-1, +1, -1)
	})

	d := NewDecoder(WithDecompressor(stubCodec{heap: heap}))
	m, err := d.decodeFmtMesh(RawAsset{Data: fmtMeshFile(len(heap), false), Name: "Bird_ZipPos"}, true)
	if err != nil {
		t.Fatalf("decodeFmtMesh failed: %v", err)
	}

	want := []math.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: -1},
	}
	if !reflect.DeepEqual(m.Vertices, want) {
		t.Errorf("got vertices %v, want %v", m.Vertices, want)
	}
	if !reflect.DeepEqual(m.Indices, []uint32{0, 1, 2}) {
		t.Errorf("got indices %v", m.Indices)
	}
	if len(m.UVs) != vnum {
		t.Errorf("expected %d placeholder UVs, got %d", vnum, len(m.UVs))
	}
}

func TestDecodeFmtMesh_MissingSignature(t *testing.T) {
	file := fmtMeshFile(64, false)
	file[0] = 0x00

	d := NewDecoder(WithDecompressor(stubCodec{heap: make([]byte, 64)}))
	if _, err := d.decodeFmtMesh(RawAsset{Data: file}, false); !errors.Is(err, ErrUnsupportedHeader) {
		t.Errorf("expected ErrUnsupportedHeader, got %v", err)
	}
}

func TestDecodeFmtMesh_BlockPastEOF(t *testing.T) {
	file := fmtMeshFile(64, false)
	binary.LittleEndian.PutUint32(file[fmtMeshCompSizeOff:], uint32(len(file)))

	d := NewDecoder(WithDecompressor(stubCodec{heap: make([]byte, 64)}))
	if _, err := d.decodeFmtMesh(RawAsset{Data: file}, false); !errors.Is(err, ErrUnsupportedHeader) {
		t.Errorf("expected ErrUnsupportedHeader, got %v", err)
	}
}

func TestDecodeFmtMesh_InsaneCounts(t *testing.T) {
	heap := make([]byte, 0x200)
	binary.LittleEndian.PutUint32(heap[heapVertexCountOff:], 2_000_000)
	binary.LittleEndian.PutUint32(heap[heapIndexCountOff:], 3)

	d := NewDecoder(WithDecompressor(stubCodec{heap: heap}))
	if _, err := d.decodeFmtMesh(RawAsset{Data: fmtMeshFile(len(heap), false)}, false); !errors.Is(err, ErrUnsupportedHeader) {
		t.Errorf("expected ErrUnsupportedHeader for insane counts, got %v", err)
	}
}

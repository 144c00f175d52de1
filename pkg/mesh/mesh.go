// Package mesh decodes the undocumented, versioned .mesh model container
// used by compiled Sky game assets. The format has no public layout
// description and varies between compiled variants (compressed vs.
// uncompressed positions, 16- vs. 32-bit indices, animation-bearing vs.
// static), so decoding works by structural probing: a sniffer classifies
// the file and an ordered chain of strategies is tried until one yields a
// structurally valid mesh.
package mesh

import (
	"errors"
	"fmt"

	"github.com/veilbreaker/skymesh/pkg/math"
)

// Decode errors. Strategy-level errors are non-fatal inside the chain;
// only ErrTruncatedData aborts a file before any strategy runs and only
// ErrStrategiesExhausted surfaces to the caller when every strategy failed.
var (
	ErrTruncatedData             = errors.New("mesh data truncated below minimum header size")
	ErrUnsupportedHeader         = errors.New("unsupported mesh header")
	ErrDecompressionFailed       = errors.New("mesh block decompression failed")
	ErrOffsetCandidatesExhausted = errors.New("no header offset candidate matched")
	ErrIndexRegionNotFound       = errors.New("no valid index region found")
	ErrStrategiesExhausted       = errors.New("all decode strategies failed")
)

// Sanity bounds. Declared counts and block sizes beyond these are taken
// as evidence that a candidate field placement is wrong, not as huge
// meshes: the game ships nothing close to a million vertices.
const (
	maxElementCount     = 1_000_000
	maxCompressedSize   = 10 << 20
	maxUncompressedSize = 50 << 20
)

// Flags carries per-model compression metadata from an external
// definitions table. The flags are advisory: they steer strategy order
// but never make a strategy's own validation stricter or looser.
type Flags struct {
	CompressPositions bool
	CompressUVs       bool
}

// RawAsset is one input file to decode. Data is never modified.
type RawAsset struct {
	Data  []byte
	Name  string // model name, usually the filename without extension
	Flags *Flags // optional external flag record, nil when unknown
}

// DecodedMesh is the extracted geometry: positions, texture coordinates
// and triangle indices (grouped in triples). Under the classic layouts
// UVs has the same length as Vertices; fmt_mesh variants may differ.
type DecodedMesh struct {
	Vertices []math.Vec3
	UVs      []math.Vec2
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *DecodedMesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of triangles.
func (m *DecodedMesh) FaceCount() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (m *DecodedMesh) Bounds() math.Box3 { return math.BoundsOf(m.Vertices) }

// Validate checks the structural invariant that every index references an
// existing vertex.
func (m *DecodedMesh) Validate() error {
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Result is a successful decode: the sanitized mesh, the strategy that
// produced it, and the triangle bookkeeping from sanitization.
type Result struct {
	Mesh         *DecodedMesh
	Strategy     Strategy
	TotalFaces   int // triangles before degenerate filtering
	DroppedFaces int // degenerate triangles removed
}

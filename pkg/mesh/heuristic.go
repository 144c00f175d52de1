package mesh

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/veilbreaker/skymesh/pkg/math"
)

// CountCandidate is one candidate placement of the shared-vertex-count
// and total-index-count fields in an uncompressed header.
type CountCandidate struct {
	SharedOff int
	TotalOff  int
}

// DefaultCountCandidates lists the known count placements, most common
// first.
var DefaultCountCandidates = []CountCandidate{
	{SharedOff: 0x74, TotalOff: 0x78},
	{SharedOff: 0x70, TotalOff: 0x74},
	{SharedOff: 0x78, TotalOff: 0x7C},
	{SharedOff: 0x80, TotalOff: 0x84},
}

// Uncompressed payload layout.
const (
	heurPayloadOff   = 0xB3
	heurVertexStride = 12 // three float32 axes
	heurUVStride     = 8  // two float32 coordinates
)

// decodeHeuristic handles files with no recognized signature and no
// compression signal: positions and UVs stored as plain float32 at a
// fixed payload offset, with only the count-field placement uncertain.
// The first candidate whose counts are sane and whose declared blocks
// fit the buffer wins.
func (d *Decoder) decodeHeuristic(asset RawAsset) (*DecodedMesh, error) {
	data := asset.Data
	for _, c := range d.countCandidates {
		if c.SharedOff+4 > len(data) || c.TotalOff+4 > len(data) {
			continue
		}
		shared := int(int32(binary.LittleEndian.Uint32(data[c.SharedOff:])))
		total := int(int32(binary.LittleEndian.Uint32(data[c.TotalOff:])))

		if shared <= 0 || shared > maxElementCount || total <= 0 || total > maxElementCount {
			continue
		}
		if total%3 != 0 {
			continue
		}
		// The payload carries shared vertex records then shared UV
		// records; the index array lives somewhere in the remaining
		// tail, so there must be one.
		geomEnd := heurPayloadOff + shared*(heurVertexStride+heurUVStride)
		if geomEnd+total*2 > len(data) {
			continue
		}

		d.log.Debug("heuristic count candidate accepted",
			zap.Int("shared_off", c.SharedOff),
			zap.Int("shared", shared),
			zap.Int("total", total))

		verts := make([]math.Vec3, shared)
		for i := range verts {
			o := heurPayloadOff + i*heurVertexStride
			verts[i] = math.Vec3{
				X: readFloat32(data, o),
				Y: readFloat32(data, o+4),
				Z: readFloat32(data, o+8),
			}
		}

		uvStart := heurPayloadOff + shared*heurVertexStride
		uvs := make([]math.Vec2, shared)
		for i := range uvs {
			o := uvStart + i*heurUVStride
			uvs[i] = math.Vec2{
				X: readFloat32(data, o),
				Y: readFloat32(data, o+4),
			}
		}

		tail := data[geomEnd:]
		indices, err := locateIndices(tail, shared, total/3)
		if err != nil {
			// Counts looked right but no index window checked out;
			// another placement may still work.
			continue
		}
		return &DecodedMesh{Vertices: verts, UVs: uvs, Indices: indices}, nil
	}
	return nil, fmt.Errorf("%w: tried %d count placements", ErrOffsetCandidatesExhausted, len(d.countCandidates))
}

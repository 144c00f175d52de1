package mesh

import "encoding/binary"

// locateIndices scans region for a contiguous run of faceCount triangle
// index triples whose values are all bounded by vertexCount. The true
// start of the index array is not recorded anywhere usable, so the scan
// advances in 2-byte steps and tests a 16-bit and a 32-bit reading at
// each position; when both validate at the same position the 16-bit one
// wins, being the common storage width in this format family. An
// all-zero window is rejected: padding runs would otherwise qualify.
func locateIndices(region []byte, vertexCount, faceCount int) ([]uint32, error) {
	if vertexCount <= 0 || faceCount <= 0 {
		return nil, ErrIndexRegionNotFound
	}
	need16 := faceCount * 3 * 2
	need32 := faceCount * 3 * 4

	for off := 0; off+6 <= len(region); off += 2 {
		if off+need16 <= len(region) {
			if idx := readIndexRun(region[off:off+need16], 2, vertexCount); idx != nil {
				return idx, nil
			}
		}
		if off+need32 <= len(region) {
			if idx := readIndexRun(region[off:off+need32], 4, vertexCount); idx != nil {
				return idx, nil
			}
		}
	}
	return nil, ErrIndexRegionNotFound
}

// readIndexRun decodes window as little-endian indices of the given byte
// width. It returns nil when any value reaches vertexCount or the whole
// window is zero.
func readIndexRun(window []byte, width, vertexCount int) []uint32 {
	n := len(window) / width
	out := make([]uint32, n)
	allZero := true
	for i := 0; i < n; i++ {
		var v uint32
		if width == 2 {
			v = uint32(binary.LittleEndian.Uint16(window[i*2:]))
		} else {
			v = binary.LittleEndian.Uint32(window[i*4:])
		}
		if v >= uint32(vertexCount) {
			return nil
		}
		if v != 0 {
			allZero = false
		}
		out[i] = v
	}
	if allZero {
		return nil
	}
	return out
}

package mesh

// Sanitize removes degenerate triangles (any two of the three indices
// equal) from a decoded mesh and returns the cleaned copy together with
// the kept and dropped triangle counts. Vertex and UV arrays are shared
// with the input, which is not modified. Sanitization cannot fail: zero
// surviving triangles is a valid, reportable outcome.
func Sanitize(m *DecodedMesh) (*DecodedMesh, int, int) {
	kept := make([]uint32, 0, len(m.Indices))
	dropped := 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if a == b || b == c || a == c {
			dropped++
			continue
		}
		kept = append(kept, a, b, c)
	}
	out := &DecodedMesh{
		Vertices: m.Vertices,
		UVs:      m.UVs,
		Indices:  kept,
	}
	return out, len(kept) / 3, dropped
}

// Package exporter serializes decoded meshes for downstream 3D tooling.
package exporter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/veilbreaker/skymesh/pkg/mesh"
)

// WriteOBJ writes the mesh as Wavefront OBJ geometry: one `v` line per
// vertex position, one `vt` per texture coordinate, one `f` per triangle
// with 1-based `pos/uv` references into both arrays. Coordinates are
// printed with six decimals; third-party importers consume this exact
// textual shape, so the format must not drift.
func WriteOBJ(w io.Writer, m *mesh.DecodedMesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %.6f %.6f\n", uv.X, uv.Y)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Indices[i] + 1
		b := m.Indices[i+1] + 1
		c := m.Indices[i+2] + 1
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}

// WriteOBJFile writes the mesh to an OBJ file at path.
func WriteOBJFile(path string, m *mesh.DecodedMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	defer f.Close()

	if err := WriteOBJ(f, m); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}

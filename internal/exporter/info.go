package exporter

import (
	"fmt"
	"io"
	"os"

	"github.com/veilbreaker/skymesh/pkg/mesh"
)

// WriteInfo writes a human-readable summary of one converted model.
func WriteInfo(w io.Writer, name string, res mesh.Result) error {
	m := res.Mesh
	bounds := m.Bounds()
	size := bounds.Size()

	_, err := fmt.Fprintf(w, `=== Model info ===
Source:    %s
Strategy:  %s
Vertices:  %d
UVs:       %d
Faces:     %d (dropped %d degenerate of %d)
Bounds:    min (%.3f, %.3f, %.3f)
           max (%.3f, %.3f, %.3f)
Size:      (%.3f, %.3f, %.3f)
`,
		name,
		res.Strategy,
		m.VertexCount(),
		len(m.UVs),
		m.FaceCount(), res.DroppedFaces, res.TotalFaces,
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z,
		bounds.Max.X, bounds.Max.Y, bounds.Max.Z,
		size.X, size.Y, size.Z,
	)
	return err
}

// WriteInfoFile writes the model summary next to the exported OBJ.
func WriteInfoFile(path, name string, res mesh.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating info file: %w", err)
	}
	defer f.Close()

	if err := WriteInfo(f, name, res); err != nil {
		return fmt.Errorf("writing info: %w", err)
	}
	return nil
}

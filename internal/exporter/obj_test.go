package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veilbreaker/skymesh/pkg/mesh"
	"github.com/veilbreaker/skymesh/pkg/math"
)

func testMesh() *mesh.DecodedMesh {
	return &mesh.DecodedMesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0.5},
		},
		UVs: []math.Vec2{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 0, Y: 1},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestWriteOBJ(t *testing.T) {
	var sb strings.Builder
	if err := WriteOBJ(&sb, testMesh()); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "v 0.000000 0.000000 0.000000\n" +
		"v 1.000000 0.000000 0.000000\n" +
		"v 0.000000 1.000000 0.500000\n" +
		"vt 0.000000 0.000000\n" +
		"vt 1.000000 0.000000\n" +
		"vt 0.000000 1.000000\n" +
		"f 1/1 2/2 3/3\n"

	if sb.String() != want {
		t.Errorf("OBJ output mismatch\ngot:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteOBJ_OneBasedIndices(t *testing.T) {
	m := testMesh()
	m.Indices = []uint32{2, 0, 1}

	var sb strings.Builder
	if err := WriteOBJ(&sb, m); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if !strings.Contains(sb.String(), "f 3/3 1/1 2/2\n") {
		t.Errorf("face line not 1-based: %s", sb.String())
	}
}

func TestWriteOBJ_NoFaces(t *testing.T) {
	m := testMesh()
	m.Indices = nil

	var sb strings.Builder
	if err := WriteOBJ(&sb, m); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if strings.Contains(sb.String(), "f ") {
		t.Error("unexpected face lines for empty index list")
	}
}

func TestWriteOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.obj")
	if err := WriteOBJFile(path, testMesh()); err != nil {
		t.Fatalf("WriteOBJFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(content), "v 0.000000") {
		t.Errorf("unexpected file content: %q", content[:30])
	}
}

func TestWriteInfo(t *testing.T) {
	res := mesh.Result{
		Mesh:         testMesh(),
		Strategy:     mesh.StrategyHeuristic,
		TotalFaces:   2,
		DroppedFaces: 1,
	}

	var sb strings.Builder
	if err := WriteInfo(&sb, "prop.mesh", res); err != nil {
		t.Fatalf("WriteInfo failed: %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"prop.mesh",
		"heuristic",
		"Vertices:  3",
		"Faces:     1 (dropped 1 degenerate of 2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

package meshdefs

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDefs = `
-- generated definitions
resource "Mesh" "CandleHolder" {
	compressPositions = true,
	compressUvs = false,
	lodCount = 3,
	texture = "candle_diffuse",
}

resource "Mesh" "Lantern_ZipPos" {
	compressPositions = true,
	compressUvs = true,
}

resource "Mesh" "PlainProp" {
	lodCount = 1,
}

resource "Texture" "NotAMesh" {
	format = "astc",
}
`

func TestParse(t *testing.T) {
	table := Parse([]byte(sampleDefs))

	if len(table) != 3 {
		t.Fatalf("got %d entries, want 3 (Texture blocks must be ignored)", len(table))
	}

	entry, ok := table["CandleHolder"]
	if !ok {
		t.Fatal("CandleHolder entry missing")
	}
	if !entry.Bool("compressPositions") {
		t.Error("compressPositions should be true")
	}
	if entry.Bool("compressUvs") {
		t.Error("compressUvs should be false")
	}
	if n, ok := entry["lodCount"].(int64); !ok || n != 3 {
		t.Errorf("lodCount = %v, want int64 3", entry["lodCount"])
	}
	if s, ok := entry["texture"].(string); !ok || s != "candle_diffuse" {
		t.Errorf("texture = %v, want candle_diffuse", entry["texture"])
	}
}

func TestTable_Flags(t *testing.T) {
	table := Parse([]byte(sampleDefs))

	flags := table.Flags("Lantern_ZipPos")
	if flags == nil {
		t.Fatal("Flags returned nil for existing entry")
	}
	if !flags.CompressPositions || !flags.CompressUVs {
		t.Errorf("flags = %+v, want both true", flags)
	}

	flags = table.Flags("PlainProp")
	if flags == nil {
		t.Fatal("Flags returned nil for entry without compression params")
	}
	if flags.CompressPositions || flags.CompressUVs {
		t.Errorf("flags = %+v, want both false", flags)
	}

	if table.Flags("Unknown") != nil {
		t.Error("Flags should return nil for unknown model")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MeshDefs.lua")
	if err := os.WriteFile(path, []byte(sampleDefs), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table) != 3 {
		t.Errorf("got %d entries, want 3", len(table))
	}

	if _, err := Load(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_Empty(t *testing.T) {
	if table := Parse(nil); len(table) != 0 {
		t.Errorf("Parse(nil) = %d entries, want 0", len(table))
	}
}

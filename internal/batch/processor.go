// Package batch converts sets of mesh files, isolating per-file failures
// so one corrupt asset never aborts the run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veilbreaker/skymesh/internal/exporter"
	"github.com/veilbreaker/skymesh/internal/meshdefs"
	"github.com/veilbreaker/skymesh/pkg/mesh"
)

// Config holds the shared resources for a batch run.
type Config struct {
	OutputDir   string
	Defs        meshdefs.Table
	WriteInfo   bool
	WriteReport bool
}

// Result holds the outcome of converting one file.
type Result struct {
	Name     string
	Strategy string
	Vertices int
	Faces    int
	Dropped  int
	Duration time.Duration
	Error    string
}

// Success reports whether the file converted cleanly.
func (r Result) Success() bool { return r.Error == "" }

// Processor runs conversions against a single decoder instance.
type Processor struct {
	cfg Config
	dec *mesh.Decoder
	log *zap.Logger
}

// NewProcessor builds a processor. A nil logger disables logging.
func NewProcessor(cfg Config, dec *mesh.Decoder, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{cfg: cfg, dec: dec, log: log}
}

// Run converts each path in order and returns one Result per input.
// Files are processed sequentially; a failed file is recorded and the
// run continues with the next one.
func (p *Processor) Run(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	start := time.Now()

	for _, path := range paths {
		res := p.processOne(path)
		results = append(results, res)

		if res.Success() {
			p.log.Info("converted",
				zap.String("file", res.Name),
				zap.String("strategy", res.Strategy),
				zap.Int("vertices", res.Vertices),
				zap.Int("faces", res.Faces),
				zap.Duration("took", res.Duration))
		} else {
			p.log.Warn("conversion failed",
				zap.String("file", res.Name),
				zap.String("error", res.Error))
		}
	}

	p.log.Info("batch finished",
		zap.Int("total", len(paths)),
		zap.Int("failed", countFailed(results)),
		zap.Duration("took", time.Since(start)))

	if p.cfg.WriteReport {
		if err := WriteReport(p.cfg.OutputDir, results); err != nil {
			p.log.Warn("writing report", zap.Error(err))
		}
	}
	return results
}

func (p *Processor) processOne(path string) Result {
	name := filepath.Base(path)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Name: name, Error: err.Error(), Duration: time.Since(start)}
	}

	asset := mesh.RawAsset{Data: data, Name: name}
	if flags := p.cfg.Defs.Flags(stripExt(name)); flags != nil {
		asset.Flags = flags
	}

	res, err := p.dec.Decode(asset)
	if err != nil {
		return Result{Name: name, Error: err.Error(), Duration: time.Since(start)}
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return Result{Name: name, Error: err.Error(), Duration: time.Since(start)}
	}

	objPath := filepath.Join(p.cfg.OutputDir, stripExt(name)+".obj")
	if err := exporter.WriteOBJFile(objPath, res.Mesh); err != nil {
		return Result{Name: name, Error: err.Error(), Duration: time.Since(start)}
	}

	if p.cfg.WriteInfo {
		infoPath := filepath.Join(p.cfg.OutputDir, stripExt(name)+".txt")
		if err := exporter.WriteInfoFile(infoPath, name, res); err != nil {
			return Result{Name: name, Error: fmt.Sprintf("info file: %v", err), Duration: time.Since(start)}
		}
	}

	return Result{
		Name:     name,
		Strategy: res.Strategy.String(),
		Vertices: res.Mesh.VertexCount(),
		Faces:    res.Mesh.FaceCount(),
		Dropped:  res.DroppedFaces,
		Duration: time.Since(start),
	}
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func countFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success() {
			n++
		}
	}
	return n
}

// meshconv converts Sky mesh assets to Wavefront OBJ.
//
// With file or directory arguments it runs as a batch converter; without
// arguments it scans the working directory for *.mesh files and prompts
// for a selection.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/veilbreaker/skymesh/internal/batch"
	"github.com/veilbreaker/skymesh/internal/config"
	"github.com/veilbreaker/skymesh/internal/logger"
	"github.com/veilbreaker/skymesh/internal/meshdefs"
	"github.com/veilbreaker/skymesh/internal/picker"
	"github.com/veilbreaker/skymesh/pkg/mesh"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.WriteConfigRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote config to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	paths, err := collectInputs(config.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No .mesh files found.")
		os.Exit(1)
	}

	// Interactive selection only when no inputs were named explicitly.
	if len(config.Args()) == 0 {
		paths, err = picker.Prompt(os.Stdin, os.Stdout, paths)
		if err == picker.ErrQuit {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	defs := loadDefs(cfg, paths, log)

	proc := batch.NewProcessor(batch.Config{
		OutputDir:   cfg.Output.Dir,
		Defs:        defs,
		WriteInfo:   cfg.Output.WriteInfo,
		WriteReport: cfg.Output.WriteReport,
	}, mesh.NewDecoder(mesh.WithLogger(log)), log)

	results := proc.Run(paths)

	failed := 0
	for _, r := range results {
		if r.Success() {
			fmt.Printf("  %-32s %s  %d verts, %d faces\n", r.Name, r.Strategy, r.Vertices, r.Faces)
		} else {
			fmt.Printf("  %-32s FAILED: %s\n", r.Name, r.Error)
			failed++
		}
	}
	fmt.Printf("Done: %d converted, %d failed.\n", len(results)-failed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// collectInputs resolves the positional arguments into a list of mesh
// file paths. Directories are scanned for *.mesh files; with no
// arguments the working directory is scanned.
func collectInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return filepath.Glob("*.mesh")
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.mesh"))
			if err != nil {
				return nil, err
			}
			paths = append(paths, matches...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

// loadDefs loads the external flag table. A missing or unreadable table
// is not fatal; without it the sniffer falls back to filename keywords.
func loadDefs(cfg *config.Config, paths []string, log *zap.Logger) meshdefs.Table {
	candidates := []string{cfg.Defs.MeshDefs}
	if cfg.Defs.MeshDefs == "" {
		candidates = []string{"MeshDefs.lua"}
		if len(paths) > 0 {
			candidates = append(candidates, filepath.Join(filepath.Dir(paths[0]), "MeshDefs.lua"))
		}
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		defs, err := meshdefs.Load(path)
		if err != nil {
			log.Warn("loading mesh definitions", zap.String("path", path), zap.Error(err))
			continue
		}
		log.Info("loaded mesh definitions", zap.String("path", path), zap.Int("entries", len(defs)))
		return defs
	}
	return nil
}

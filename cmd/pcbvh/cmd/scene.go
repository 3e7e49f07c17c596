package cmd

import (
	"fmt"
	"time"

	"github.com/arl/go-pcbvh/bvh"
	"github.com/arl/go-pcbvh/pcbfile"
	"github.com/arl/go-pcbvh/scene"
)

// loadScene parses scenePath with the labels/settings from cfgPath (or
// defaults if cfgPath is empty), builds the scene, and optionally dumps
// build timings to stdout.
func loadScene(scenePath, cfgPath string, verbose bool) (*scene.Scene, error) {
	cfg := defaultBuildSettings()
	if cfgPath != "" {
		if err := unmarshalYAMLFile(cfgPath, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", cfgPath, err)
		}
	}

	prims, err := pcbfile.Load(scenePath, cfg.labels())
	if err != nil {
		return nil, err
	}

	ctx := bvh.NewBuildContext(verbose)
	start := time.Now()
	s := scene.Build(prims, cfg.bvhSettings(), ctx)
	if verbose {
		bvh.LogBuildTimes(ctx, time.Since(start))
		ctx.DumpLog("=== %d primitives indexed from %s", len(prims), scenePath)
	}
	return s, nil
}

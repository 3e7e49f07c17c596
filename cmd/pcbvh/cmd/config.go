package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/go-pcbvh/bvh"
	"github.com/arl/go-pcbvh/export"
	"github.com/arl/go-pcbvh/pcbfile"
)

// buildSettings is the YAML-serializable mirror of bvh.Settings, plus the
// peripheral settings (primitive labels, export sampling) that aren't
// part of the builder itself but belong in the same settings file.
type buildSettings struct {
	MinLeaf           int `yaml:"min_leaf"`
	MaxLeaf           int `yaml:"max_leaf"`
	Buckets           int `yaml:"buckets"`
	ParallelThreshold int `yaml:"parallel_threshold"`
	Workers           int `yaml:"workers"`

	SegmentLabel string `yaml:"segment_label"`
	ArcLabel     string `yaml:"arc_label"`

	ExportMaxAngleStep  float64 `yaml:"export_max_angle_step"`
	ExportMaxChordError float64 `yaml:"export_max_chord_error"`
}

func defaultBuildSettings() buildSettings {
	s := bvh.DefaultSettings()
	labels := pcbfile.DefaultLabels()
	exp := export.DefaultConfig()
	return buildSettings{
		MinLeaf:             s.MinLeaf,
		MaxLeaf:             s.MaxLeaf,
		Buckets:             s.Buckets,
		ParallelThreshold:   s.ParallelThreshold,
		Workers:             s.Workers,
		SegmentLabel:        labels.Segment,
		ArcLabel:            labels.Arc,
		ExportMaxAngleStep:  exp.MaxAngleStep,
		ExportMaxChordError: exp.MaxChordError,
	}
}

func (c buildSettings) bvhSettings() bvh.Settings {
	return bvh.Settings{
		MinLeaf:           c.MinLeaf,
		MaxLeaf:           c.MaxLeaf,
		Buckets:           c.Buckets,
		ParallelThreshold: c.ParallelThreshold,
		Workers:           c.Workers,
	}
}

func (c buildSettings) labels() pcbfile.Labels {
	return pcbfile.Labels{Segment: c.SegmentLabel, Arc: c.ArcLabel}
}

func (c buildSettings) exportConfig() export.Config {
	cfg := export.DefaultConfig()
	cfg.MaxAngleStep = c.ExportMaxAngleStep
	cfg.MaxChordError = c.ExportMaxChordError
	return cfg
}

// configCmd writes a settings file prefilled with defaults.
var configCmd = &cobra.Command{
	Use:   "config [FILE]",
	Short: "write a build settings file prefilled with defaults",
	Long: `Write a build settings file in YAML format, prefilled with default
values.

If FILE is not provided, 'pcbvh.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "pcbvh.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("file %s already exists, overwrite? [y/N]", path))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		check(marshalYAMLFile(path, defaultBuildSettings()))
		fmt.Printf("build settings written to %q\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}

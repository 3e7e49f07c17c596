package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "pcbvh",
	Short: "index PCB segments and arcs in a 2D BVH and query it",
	Long: `pcbvh builds a bounding-volume hierarchy over a PCB's segment and
arc primitives, then answers closest-point and box-overlap queries
against it:
	- build    check a primitive file parses and report build timings
	- closest  find the primitive nearest a query point
	- overlap  list primitives overlapping a query box
	- export   write a visualization-friendly vertex/polyline file
	- config   write a build settings file prefilled with defaults`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCfgVal string

// buildCmd checks that a primitive file parses and a Bvh can be built
// over it, printing build timings. It doesn't persist anything: the
// index exists only in memory for the duration of a process.
var buildCmd = &cobra.Command{
	Use:   "build SCENE.pcb",
	Short: "parse a primitive file and build its BVH, reporting timings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := loadScene(args[0], buildCfgVal, true)
		check(err)
		fmt.Printf("%d primitives, square bbox %v\n", s.Len(), s.SquareBBox())
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildCfgVal, "config", "", "build settings YAML (defaults if unset)")
}

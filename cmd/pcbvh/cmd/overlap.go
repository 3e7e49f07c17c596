package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/status"
)

var overlapCfgVal string

// overlapCmd lists the primitives overlapping a query box.
var overlapCmd = &cobra.Command{
	Use:   "overlap SCENE.pcb MINX MINY MAXX MAXY",
	Short: "list primitives overlapping a query box",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		coords := make([]float64, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(args[i+1], 64)
			check(err)
			coords[i] = v
		}
		box := geom.BoxFromPoints(geom.Pt(coords[0], coords[1]), geom.Pt(coords[2], coords[3]))

		s, err := loadScene(args[0], overlapCfgVal, false)
		check(err)

		hits, st := s.Overlap(box, nil)
		if status.Failed(st) {
			fmt.Println("error:", st)
			return
		}
		if status.IsWarning(st) {
			fmt.Println("no hits")
			return
		}
		for _, h := range hits {
			p := s.Primitive(h)
			fmt.Printf("#%d: %s\n", h, p.Kind)
		}
	},
}

func init() {
	RootCmd.AddCommand(overlapCmd)
	overlapCmd.Flags().StringVar(&overlapCfgVal, "config", "", "build settings YAML (defaults if unset)")
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/status"
)

var closestCfgVal string

// closestCmd answers a single closest-point query against SCENE.pcb.
var closestCmd = &cobra.Command{
	Use:   "closest SCENE.pcb X Y",
	Short: "find the primitive nearest (X, Y)",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		x, err := strconv.ParseFloat(args[1], 64)
		check(err)
		y, err := strconv.ParseFloat(args[2], 64)
		check(err)

		s, err := loadScene(args[0], closestCfgVal, false)
		check(err)

		dist, closest, st := s.ClosestPoint(geom.Pt(x, y))
		if status.Failed(st) {
			fmt.Println("error:", st)
			return
		}
		fmt.Printf("distance=%v closest=(%v, %v)\n", dist, closest.X, closest.Y)
	},
}

func init() {
	RootCmd.AddCommand(closestCmd)
	closestCmd.Flags().StringVar(&closestCfgVal, "config", "", "build settings YAML (defaults if unset)")
}

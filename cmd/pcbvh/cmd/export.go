package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/go-pcbvh/export"
	"github.com/arl/go-pcbvh/pcbfile"
)

var exportCfgVal string

// exportCmd writes a visualization-friendly vertex/polyline listing of a
// primitive file's contents.
var exportCmd = &cobra.Command{
	Use:   "export SCENE.pcb OUT.txt",
	Short: "write a vertex/polyline listing for visualization",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := defaultBuildSettings()
		if exportCfgVal != "" {
			check(unmarshalYAMLFile(exportCfgVal, &cfg))
		}

		prims, err := pcbfile.Load(args[0], cfg.labels())
		check(err)

		ok, err := confirmIfExists(args[1], fmt.Sprintf("file %s already exists, overwrite? [y/N]", args[1]))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}

		out, err := os.Create(args[1])
		check(err)
		defer out.Close()

		check(export.Write(out, prims, cfg.exportConfig()))
		fmt.Printf("%d primitives exported to %q\n", len(prims), args[1])
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportCfgVal, "config", "", "build settings YAML (defaults if unset)")
}

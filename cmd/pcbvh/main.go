// Command pcbvh builds a spatial index over a PCB primitive file and
// answers closest-point/box-overlap queries against it from the command
// line.
package main

import "github.com/arl/go-pcbvh/cmd/pcbvh/cmd"

func main() {
	cmd.Execute()
}

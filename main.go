package main

import "github.com/inference-sim/rdtsim/cmd"

func main() {
	cmd.Execute()
}

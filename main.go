package main

import "github.com/audiolibrelab/lapsecapture/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/RamXX/beads/cmd"

func main() {
	cmd.Execute()
}

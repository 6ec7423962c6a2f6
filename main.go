package main

import "github.com/philipparndt/box3dmode/internal/cmd"

func main() {
	cmd.Parse()
}

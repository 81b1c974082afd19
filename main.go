package main

import "github.com/cristianadrielbraun/qrick/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/codescope/codescope/cmd"

func main() {
	cmd.Execute()
}

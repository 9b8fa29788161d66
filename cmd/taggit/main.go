package main

import "github.com/sawshep/taggit/cmd/taggit/cmd"

func main() {
	cmd.Execute()
}

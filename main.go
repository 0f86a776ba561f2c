package main

import "github.com/jwalton/pixivdl/cmd"

func main() {
	cmd.Execute()
}

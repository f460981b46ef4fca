package main

import "github.com/jdlsoft/it3t-filing/cmd"

func main() {
	cmd.Execute()
}

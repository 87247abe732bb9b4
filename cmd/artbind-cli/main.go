package main

import "artbind/cmd/artbind-cli/cmd"

func main() {
	cmd.Execute()
}

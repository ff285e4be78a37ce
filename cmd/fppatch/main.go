package main

import "fppatch/cmd/fppatch/cmd"

func main() {
	cmd.Execute()
}

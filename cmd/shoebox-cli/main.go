package main

import "shoebox/cmd/shoebox-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "bubblesea/cmd/bubblesea-cli/cmd"

func main() {
	cmd.Execute()
}

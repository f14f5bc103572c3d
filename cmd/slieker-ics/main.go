package main

import "github.com/pfrederiksen/slieker-ics/internal/cli"

func main() {
	cli.Execute()
}

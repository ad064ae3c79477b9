package main

import "stationpicker/internal/cli"

func main() {
	cli.Execute()
}

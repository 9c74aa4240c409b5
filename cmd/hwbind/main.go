package main

import "pinball-hwbind/internal/cli"

func main() {
	cli.Execute()
}

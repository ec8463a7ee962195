package main

import "github.com/andrescamacho/cardarb-go/internal/adapters/cli"

func main() {
	cli.Execute()
}

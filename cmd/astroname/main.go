// Package main provides the entry point for the astroname CLI.
package main

import "github.com/raphaelgruber/astroname/internal/cli"

func main() {
	cli.Main()
}

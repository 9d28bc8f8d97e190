package main

import "github.com/ericogr/squadxp/internal/cli"

func main() {
	cli.Execute()
}

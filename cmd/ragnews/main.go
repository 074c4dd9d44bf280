package main

import "ragnews/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/kinokino2010/mdkanban/internal/cli"

func main() {
	cli.Execute()
}

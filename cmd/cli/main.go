package main

import "github.com/citelab/cvet/pkg/cli"

func main() {
	cli.Execute()
}

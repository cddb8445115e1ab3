package main

import (
	"os"

	"github.com/AbhishekPandey12/foodorderingapp/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

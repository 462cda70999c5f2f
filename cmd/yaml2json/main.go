package main

import (
	"os"

	"github.com/0xalexb/yaml2json/cli"
)

func main() {
	os.Exit(cli.Execute())
}

package main

import (
	"github.com/mfreeman/rosterhub/internal/cli"
)

func main() {
	cli.Execute()
}

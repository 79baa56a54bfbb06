package main

import (
	"github.com/NVIDIA/errorsink/pkg/cli"
)

func main() {
	cli.Execute()
}

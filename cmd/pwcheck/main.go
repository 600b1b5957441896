package main

import (
	"github.com/mchmarny/pwcheck/pkg/cli"
)

func main() {
	cli.Execute()
}

package main

import (
	"fmt"
	"os"

	"github.com/shadowCow/nettopo/cli"
)

func main() {
	err := cli.Run(cli.Config{
		Args:   os.Args,
		Output: os.Stdout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

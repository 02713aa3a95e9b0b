package main

import (
	"os"

	"github.com/notemark/notemark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

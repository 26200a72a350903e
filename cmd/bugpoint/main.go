package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/ir-bugpoint/cmd/bugpoint/app"
)

func main() {
	if err := app.NewBugpointCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

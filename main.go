// Package main is the entry point for the coursecast application.
package main

import (
	"fmt"
	"os"

	"github.com/coursecast/coursecast/cmd"
	"github.com/coursecast/coursecast/config"
	"github.com/coursecast/coursecast/log"
)

func main() {
	if err := config.Setup(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := log.Setup(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "setup logs: %v\n", err)
		os.Exit(1)
	}

	cmd.Execute()
}

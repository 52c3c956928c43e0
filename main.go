package main

import (
	"fmt"
	"os"

	"github.com/ytget/terminal-archive/internal/bootstrap"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	fmt.Printf("%s v%s starting...\n", bootstrap.AppName, version)

	if err := bootstrap.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

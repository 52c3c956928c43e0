package main

import (
	"fmt"
	"os"

	"github.com/ytget/terminal-archive/internal/bootstrap"
)

func main() {
	if err := bootstrap.Run("dev"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/malusev998/quote-sheet/cli/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/movie-checkout/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

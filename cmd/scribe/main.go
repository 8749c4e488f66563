package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vidscribe/scribe/internal/cli"
)

func main() {
	cfg := cli.LoadConfig()

	app, err := cli.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}
}

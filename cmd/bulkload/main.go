// Command bulkload infers a table schema from a batch of delimited files,
// recreates the table and loads every file into it.
//
//	bulkload run --config pipeline.yaml
//	bulkload schema --config pipeline.yaml
//	bulkload validate --config pipeline.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// register all backends and dialects with their factories.
	_ "bulkload/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bulkload: %v\n", err)
		stop()
		os.Exit(1)
	}
}

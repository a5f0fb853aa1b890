// Comando de mantenimiento del ledger: migraciones, verificación de stock por replay y hash del PIN.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version se inyecta con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

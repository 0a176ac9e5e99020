// Command pricesync сверяет прайс поставщика с базой без HTTP-сервера.
//
//	pricesync reconcile --supplier JHT_05.xlsx --base base.xlsx --out report.xlsx
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"price-recon/internal/config"
	recSvc "price-recon/internal/reconcile/service"
)

const (
	exitError         = 1
	exitMisconfigured = 2
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(cfg, logger)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if recSvc.IsMisconfigured(err) {
		return exitMisconfigured
	}
	return exitError
}

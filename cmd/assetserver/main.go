package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"model-viewer/internal/assetserver"
	"model-viewer/internal/cli"
	"model-viewer/internal/logger"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, args []string) error {
	opts, exit, err := cli.ParseServer(args, out, assetserver.DefaultAddr)
	if err != nil || exit {
		return err
	}

	log := logger.NewWriter(os.Stderr, logger.ParseLevel(opts.LogLevel))
	slog.SetDefault(log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return assetserver.Serve(ctx, opts.Addr, opts.Dir, log.Logger)
}

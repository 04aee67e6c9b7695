// Command llmnrd answers LLMNR (RFC 4795) queries for this host's name
// with the IPv4 addresses of the interface each query arrived on.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/localecho/llmnr/responder"
)

func main() {
	hostname := flag.String("hostname", "", "hostname to answer for (default: system hostname, cut at the first dot)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *hostname); err != nil {
		fmt.Fprintf(os.Stderr, "llmnrd: %v\n", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, hostname string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []responder.Option{responder.WithLogger(log)}
	if hostname != "" {
		opts = append(opts, responder.WithHostname(hostname))
	}

	r, err := responder.New(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	log.Info("answering LLMNR queries", "hostname", r.Hostname())

	if err := r.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutting down")
	return nil
}

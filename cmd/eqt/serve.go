package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/eqtree/pkg/export"
)

type serveOptions struct {
	addr string
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live SVG preview that reloads when the tree file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:7420", "Listen address")

	return cmd
}

func runServe(cmd *cobra.Command, flags *rootFlags, opts *serveOptions) error {
	ac, err := loadAppContext(cmd, flags)
	if err != nil {
		return err
	}
	roots, err := ac.loadForest("serve preview", true)
	if err != nil {
		return err
	}

	hub, err := export.NewPreviewHub(ac.title(), roots, ac.theme.Palette())
	if err != nil {
		return newCommandError("serve preview", "rendering diagram", err, "")
	}
	defer hub.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := startWatcher(ctx, ac)
	if err != nil {
		ac.log.Warnf(err, "live reload disabled")
	} else {
		defer watcher.Close()
		go func() {
			for ev := range watcher.Events() {
				if ev.Err != nil {
					ac.log.Warnf(ev.Err, "reload failed, keeping previous diagram")
					continue
				}
				if err := hub.Update(ev.Roots, ac.theme.Palette()); err != nil {
					ac.log.Error(err, "re-render failed")
					continue
				}
				ac.log.With("clients", hub.ClientCount()).Debug("preview reloaded")
			}
		}()
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s (Ctrl+C to stop)\n", ac.treePath, opts.addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return newCommandError("serve preview", "listening on "+opts.addr, err, "Pick a free port with --addr.")
		}
		return nil
	case <-ctx.Done():
	}

	// SSE streams never finish on their own.
	hub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return newCommandError("serve preview", "shutting down", err, "")
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/marketway/fs"
	mwhttp "github.com/fwojciec/marketway/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It stops on SIGINT or SIGTERM and reloads
// the catalog on SIGHUP.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := mwhttp.NewServer()
	s.Addr = c.Addr
	s.Logger = deps.Logger
	s.RateLimit = c.Rate
	s.RateBurst = c.Burst
	s.Asker = deps.Asker
	s.ImageAsker = deps.ImageAsker
	s.VoiceAsker = deps.VoiceAsker
	s.Navigator = deps.Navigator
	s.Directory = deps.Directory
	s.Synthesizer = deps.Synthesizer
	s.Images = deps.Images
	s.ImageDir = deps.ImageDir
	s.Temp = fs.NewTempDir(c.Temp)

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Serving %s on %s\n", deps.Market, s.URL())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return reloadOnHangup(gctx, deps)
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Close()
	})
	return g.Wait()
}

// reloadOnHangup reloads the catalog on every SIGHUP until ctx is done.
// A failed reload keeps the current catalog.
func reloadOnHangup(ctx context.Context, deps *Dependencies) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			if deps.Reload == nil {
				continue
			}
			if err := deps.Reload(ctx); err != nil {
				deps.Logger.Error("catalog reload failed", "err", err)
				continue
			}
			deps.Logger.Info("catalog reloaded")
		}
	}
}

/*
Lumen renders a scene of wireframe objects through a movable camera, in a
window or headless into a PNG snapshot.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/config"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/testbed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lumen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if path := flags.WriteConfigPath(); path != "" {
		return cfg.SaveTo(path)
	}

	logConfig, err := cfg.ToLogConfig()
	if err != nil {
		return err
	}
	if err := core.InitializeLogging(logConfig); err != nil {
		return err
	}
	defer core.ShutdownLogging()

	tb, err := testbed.NewTestGame(cfg)
	if err != nil {
		return err
	}

	e, err := engine.New(tb.Game)
	if err != nil {
		return err
	}

	// capture sigterm and other system calls here
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return err
	}

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

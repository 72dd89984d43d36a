package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/matheus3301/hirechat/internal/app"
	"github.com/matheus3301/hirechat/internal/lock"
	"github.com/matheus3301/hirechat/internal/profile"
	"github.com/matheus3301/hirechat/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	startFlag := flag.String("start-url", "", "dashboard URL to start on (overrides profile start_url)")
	metricsFlag := flag.String("metrics-addr", "", "serve poll metrics on this address, e.g. 127.0.0.1:9464")
	debugFlag := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	name := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var ui *tui.App
	fxApp := fx.New(
		app.Module(app.Params{
			Profile:     name,
			StartURL:    *startFlag,
			MetricsAddr: *metricsFlag,
			Debug:       *debugFlag,
		}),
		// The terminal belongs to the TUI; fx reports to the log file.
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Populate(&ui),
	)
	if err := fxApp.Err(); err != nil {
		fail(err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		fail(err)
	}

	runErr := ui.Run()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error: shutdown: %v\n", err)
	}
	if runErr != nil {
		fail(runErr)
	}
}

func fail(err error) {
	var held *lock.HeldError
	if errors.As(err, &held) {
		fmt.Fprintf(os.Stderr, "error: %v\n", held)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

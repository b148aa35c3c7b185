package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/learnlink/learnlink/internal/buildinfo"
	"github.com/learnlink/learnlink/internal/client/cli"
	"github.com/learnlink/learnlink/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so an interrupt ends the process here.
	// Only a real signal gets here; returning from Run never wakes it.
	go func() {
		<-sigCh
		cancel()
		_ = app.Close()
		os.Exit(130)
	}()

	app.Run(ctx)

}

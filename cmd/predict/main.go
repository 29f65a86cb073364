// Package main submits one injury-risk prediction from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	predictcmd "github.com/louisbranch/injuryrisk/internal/cmd/predict"
	"github.com/louisbranch/injuryrisk/internal/platform/config"
)

func main() {
	cfg, err := predictcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitCodef(2, "parse flags: %v", err)
	}
	log.SetPrefix("[PREDICT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := predictcmd.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		if errors.Is(err, predictcmd.ErrPredictionFailed) {
			os.Exit(1)
		}
		config.Exitf("predict: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"flight-itinerary-service/internal/cli"
	"flight-itinerary-service/internal/config"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.LoadDotEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, cli.ErrInconclusive) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

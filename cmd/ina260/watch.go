package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/korbin/ina260"
	"github.com/korbin/ina260/cmd/ina260/console"
)

var watchCmd = cli.Command{
	Name:  "watch",
	Usage: "sample current, voltage and power periodically until interrupted",
	Flags: append(busFlags(),
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Value:   time.Second,
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		address, err := peripheralAddress(c)
		if err != nil {
			return console.Exit(1, "invalid address: %s", console.Red(err))
		}
		bus, cleanup, err := openBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer cleanup()

		dev, err := ina260.NewWithAddress(ctx, bus, address)
		if err != nil {
			return console.Exit(1, "device initialization error: %s", console.Red(err))
		}

		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()
		for {
			current, err := dev.Current(ctx)
			if err != nil {
				console.Errorf("error reading current: %s", console.Red(err))
			}
			voltage, err := dev.Voltage(ctx)
			if err != nil {
				console.Errorf("error reading voltage: %s", console.Red(err))
			}
			power, err := dev.Power(ctx)
			if err != nil {
				console.Errorf("error reading power: %s", console.Red(err))
			}
			console.Printf("%s  %8d µA  %9d µV  %7d mW\n",
				time.Now().Format(time.TimeOnly), current, voltage, power)

			select {
			case <-ticker.C:
			case <-ctx.Done():
				console.Print("stopped")
				return nil
			}
		}
	},
}

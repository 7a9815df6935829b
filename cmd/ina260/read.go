package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/korbin/ina260"
	"github.com/korbin/ina260/cmd/ina260/console"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read current, bus voltage and power once",
	Flags: append(busFlags(),
		&cli.BoolFlag{
			Name:  "split",
			Usage: "print whole units with a sub-unit remainder instead of raw microunits",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
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

		if c.Bool("split") {
			return readSplit(ctx, dev)
		}

		current, err := dev.Current(ctx)
		if err != nil {
			return console.Exit(1, "error reading current: %s", console.Red(err))
		}
		voltage, err := dev.Voltage(ctx)
		if err != nil {
			return console.Exit(1, "error reading voltage: %s", console.Red(err))
		}
		power, err := dev.Power(ctx)
		if err != nil {
			return console.Exit(1, "error reading power: %s", console.Red(err))
		}
		console.Printf("%s %s µA\n", console.PictoLightning, console.White(current))
		console.Printf("%s %s µV\n", console.PictoPlug, console.White(voltage))
		console.Printf("%s %s mW\n", console.PictoBattery, console.White(power))
		return nil
	},
}

func readSplit(ctx context.Context, dev *ina260.INA260) error {
	amps, ampRest, err := dev.CurrentSplit(ctx)
	if err != nil {
		return console.Exit(1, "error reading current: %s", console.Red(err))
	}
	volts, voltRest, err := dev.VoltageSplit(ctx)
	if err != nil {
		return console.Exit(1, "error reading voltage: %s", console.Red(err))
	}
	watts, wattRest, err := dev.PowerSplit(ctx)
	if err != nil {
		return console.Exit(1, "error reading power: %s", console.Red(err))
	}
	// remainders are in 10 µA / 10 µV / 10 µW steps, five digits per unit
	console.Printf("%s %d.%05d A\n", console.PictoLightning, amps, ampRest)
	console.Printf("%s %d.%05d V\n", console.PictoPlug, volts, voltRest)
	console.Printf("%s %d.%05d W\n", console.PictoBattery, watts, wattRest)
	return nil
}

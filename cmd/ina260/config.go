package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/korbin/ina260"
	"github.com/korbin/ina260/cmd/ina260/console"
)

var configCmd = cli.Command{
	Name: "config",
	Subcommands: []*cli.Command{
		&configShowCmd,
		&configSetCmd,
		&configResetCmd,
	},
}

var configShowCmd = cli.Command{
	Name:  "show",
	Usage: "print the active configuration (the chip is reset to defaults first)",
	Flags: busFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		defer cleanup()
		return printSnapshot(dev)
	},
}

var configSetCmd = cli.Command{
	Name:  "set",
	Usage: "apply configuration fields on top of the reset defaults",
	Flags: append(busFlags(),
		&cli.IntFlag{
			Name:  "avg",
			Usage: "averaging sample count: 1, 4, 16, 64, 128, 256, 512 or 1024",
		},
		&cli.IntFlag{
			Name:  "shunt-time",
			Usage: "shunt conversion time in µs: 140, 204, 332, 588, 1100, 2116, 4156 or 8244",
		},
		&cli.IntFlag{
			Name:  "bus-time",
			Usage: "bus conversion time in µs, same ladder as --shunt-time",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "operating mode, e.g. 'shutdown' or 'current+voltage continuous'",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		defer cleanup()

		if c.IsSet("avg") {
			mode, err := ina260.AveragingModeFromSamples(c.Int("avg"))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if err := dev.SetAveragingMode(ctx, mode); err != nil {
				return console.Exit(1, "error setting averaging: %s", console.Red(err))
			}
		}
		if c.IsSet("shunt-time") {
			t, err := ina260.ShuntConvTimeFromMicros(c.Int("shunt-time"))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if err := dev.SetShuntConvTime(ctx, t); err != nil {
				return console.Exit(1, "error setting shunt conversion time: %s", console.Red(err))
			}
		}
		if c.IsSet("bus-time") {
			t, err := ina260.BusConvTimeFromMicros(c.Int("bus-time"))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if err := dev.SetBusConvTime(ctx, t); err != nil {
				return console.Exit(1, "error setting bus conversion time: %s", console.Red(err))
			}
		}
		if c.IsSet("mode") {
			mode, err := ina260.OperatingModeFromName(c.String("mode"))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if err := dev.SetOperatingMode(ctx, mode); err != nil {
				return console.Exit(1, "error setting operating mode: %s", console.Red(err))
			}
		}
		return printSnapshot(dev)
	},
}

var configResetCmd = cli.Command{
	Name:  "reset",
	Usage: "write the reset strobe, restoring power-on defaults",
	Flags: busFlags(),
	Action: func(c *cli.Context) error {
		answer, err := console.YesOrNo("reset the device to power-on defaults?")
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if answer != console.Yes {
			console.Printf("%s aborted\n", console.PictoStop)
			return nil
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		defer cleanup()
		console.Printf("device reset\n")
		return printSnapshot(dev)
	},
}

// openDevice combines bus opening and device initialization; device
// initialization always includes the reset write.
func openDevice(ctx context.Context, c *cli.Context) (*ina260.INA260, func(), error) {
	address, err := peripheralAddress(c)
	if err != nil {
		return nil, func() {}, console.Exit(1, "invalid address: %s", console.Red(err))
	}
	bus, cleanup, err := openBus(c)
	if err != nil {
		return nil, func() {}, console.Exit(1, "adapter initialization error: %s", console.Red(err))
	}
	dev, err := ina260.NewWithAddress(ctx, bus, address)
	if err != nil {
		cleanup()
		return nil, func() {}, console.Exit(1, "device initialization error: %s", console.Red(err))
	}
	return dev, cleanup, nil
}

func printSnapshot(dev *ina260.INA260) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(dev.Snapshot()); err != nil {
		return console.Exit(1, "encoding error: %s", console.Red(err))
	}
	return enc.Close()
}

package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/korbin/ina260/cmd/ina260/console"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "read die and manufacturer identification",
	Flags: busFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, cleanup, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		defer cleanup()

		if !dev.Connected(ctx) {
			console.Warn("die id does not match an INA260")
		}
		id, revision, err := dev.DieID(ctx)
		if err != nil {
			return console.Exit(1, "error reading die id: %s", console.Red(err))
		}
		manufacturer, err := dev.ManufacturerID(ctx)
		if err != nil {
			return console.Exit(1, "error reading manufacturer id: %s", console.Red(err))
		}
		console.Printf("%s die %#x rev %d, manufacturer %#x\n",
			console.PictoChip, id, revision, manufacturer)
		return nil
	},
}

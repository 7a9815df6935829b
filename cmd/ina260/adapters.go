package main

import (
	"strconv"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"periph.io/x/conn/v3/physic"

	"github.com/korbin/ina260"
	"github.com/korbin/ina260/adapter"
	"github.com/korbin/ina260/cmd/ina260/console"
	"github.com/korbin/ina260/i2c"
)

func busFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Value:   "mcp2221",
			Usage:   "bus adapter: mcp2221, generic or nanopi",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Value:   "/dev/i2c-1",
			Usage:   "i2c device path (generic adapter)",
		},
		&cli.IntFlag{
			Name:  "bus",
			Value: 2,
			Usage: "platform i2c bus number (nanopi adapter)",
		},
		&cli.IntFlag{
			Name:  "speed",
			Usage: "bus clock in kHz (generic adapter), 0 leaves the default",
		},
		&cli.StringFlag{
			Name:  "address",
			Value: "0x40",
			Usage: "7-bit peripheral address",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	}
}

func peripheralAddress(c *cli.Context) (byte, error) {
	addr, err := strconv.ParseUint(c.String("address"), 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(addr), nil
}

// openBus builds the transport selected by the adapter flag. The returned
// cleanup func is always safe to call.
func openBus(c *cli.Context) (ina260.I2CBus, func(), error) {
	switch c.String("adapter") {
	case "generic":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, func() {}, err
		}
		if kHz := c.Int("speed"); kHz > 0 {
			if err := bus.SetSpeed(physic.Frequency(kHz) * physic.KiloHertz); err != nil {
				_ = bus.Close()
				return nil, func() {}, err
			}
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}, nil
	case "nanopi":
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, func() {}, err
		}
		bus := adapter.NewGobotBus(npi, c.Int("bus"))
		return bus, func() {
			if err := bus.Release(c.Context); err != nil {
				console.Errorf("error releasing bus: %s", console.Red(err))
			}
			_ = npi.I2cBusAdaptor.Finalize()
		}, nil
	default:
		ad := adapter.NewMCP2221()
		if err := ad.Init(); err != nil {
			return nil, func() {}, err
		}
		return ad, func() {
			if err := ad.Close(); err != nil {
				console.Errorf("error closing adapter: %s", console.Red(err))
			}
		}, nil
	}
}

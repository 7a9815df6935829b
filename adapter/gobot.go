package adapter

import (
	"context"
	"fmt"

	"gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/korbin/ina260"
)

var _ ina260.I2CBus = &GobotBus{}

// GobotBus exposes a gobot i2c connector (any gobot platform adaptor) as an
// ina260.I2CBus. Connections are opened per peripheral address on first use
// and kept until Release.
type GobotBus struct {
	connector i2c.Connector
	busID     int
	conns     map[byte]i2c.Connection
}

// NewGobotBus wraps a connected gobot adaptor. busID selects the platform
// I2C bus; pass a negative value to use the adaptor default.
func NewGobotBus(connector i2c.Connector, busID int) *GobotBus {
	if busID < 0 {
		busID = connector.DefaultI2cBus()
	}
	return &GobotBus{
		connector: connector,
		busID:     busID,
		conns:     make(map[byte]i2c.Connection),
	}
}

func (b *GobotBus) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.busID)
	if err != nil {
		return nil, fmt.Errorf("could not get i2c connection to %#x on bus %d: %w", address, b.busID, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to i2c address %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c address %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

// Release closes all open connections.
func (b *GobotBus) Release(ctx context.Context) error {
	var first error
	for address, conn := range b.conns {
		if err := conn.Close(); err != nil && first == nil {
			first = fmt.Errorf("could not close connection to %#x: %w", address, err)
		}
		delete(b.conns, address)
	}
	return first
}

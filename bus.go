package ina260

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport the driver talks through. Implementations decide
// whether a transaction blocks the calling goroutine or suspends on the
// context; the driver's register protocol is the same either way.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

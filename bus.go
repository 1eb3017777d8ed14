package hs3003

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// AddressableReader reads bytes from a 7-bit bus address.
type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

// AddressableWriter writes bytes to a 7-bit bus address.
type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport capability the driver requires. Implementations
// live in the adapter and i2c packages; any type providing addressed
// blocking write and read works.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

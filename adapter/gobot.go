package adapter

import (
	"context"
	"fmt"
	"sync"

	"gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/melastmohican/hs3003"
)

// GobotBus exposes any gobot I2C connector (nanopi, raspi, etc.) as an
// hs3003.I2CBus. Gobot hands out one connection per device address, so
// connections are cached per address and closed on Release.
type GobotBus struct {
	mx        sync.Mutex
	connector i2c.Connector
	busID     int
	conns     map[byte]i2c.Connection
}

var _ hs3003.I2CBus = &GobotBus{}

// NewGobotBus wraps the given connector. When busID is omitted the
// platform's default I2C bus is used.
func NewGobotBus(connector i2c.Connector, busID ...int) *GobotBus {
	id := connector.DefaultI2cBus()
	if len(busID) > 0 {
		id = busID[0]
	}
	return &GobotBus{
		connector: connector,
		busID:     id,
		conns:     make(map[byte]i2c.Connection),
	}
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

// Release closes all cached device connections.
func (b *GobotBus) Release(ctx context.Context) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var firstErr error
	for addr, conn := range b.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection to %#x: %w", addr, err)
		}
		delete(b.conns, addr)
	}
	return firstErr
}

func (b *GobotBus) connection(address byte) (i2c.Connection, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.busID)
	if err != nil {
		return nil, fmt.Errorf("could not get i2c connection to %#x: %w", address, err)
	}
	b.conns[address] = conn
	return conn, nil
}

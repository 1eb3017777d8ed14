package hs3003

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock.
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// countingDelay records settle waits so tests can assert the protocol
// sequence without sleeping.
type countingDelay struct {
	calls []uint32
}

func (d *countingDelay) DelayMicroseconds(us uint32) {
	d.calls = append(d.calls, us)
}

func TestHS3003_ConvertHum(t *testing.T) {
	tests := []struct {
		given    []byte
		expected float32
	}{
		{[]byte{0x00, 0x00}, 0.0},
		{[]byte{0x3F, 0xFF}, 100.0},
		{[]byte{0xFF, 0xFF}, 100.0}, // status bits masked off
		{[]byte{0x1F, 0xFF}, 49.996948},
	}
	for _, test := range tests {
		t.Run(hex.EncodeToString(test.given), func(t *testing.T) {
			assert.InDelta(t, test.expected, convertHumidity(test.given), 0.0001)
		})
	}
}

func TestHS3003_ConvertTemp(t *testing.T) {
	tests := []struct {
		given    []byte
		expected float32
	}{
		{[]byte{0x00, 0x00}, -40.0},
		{[]byte{0x00, 0x03}, -40.0}, // unused low bits shifted out
		{[]byte{0xFF, 0xFC}, 125.0},
		{[]byte{0xFF, 0xFF}, 125.0},
		{[]byte{0x66, 0x64}, 26.0081},
	}
	for _, test := range tests {
		t.Run(hex.EncodeToString(test.given), func(t *testing.T) {
			assert.InDelta(t, test.expected, convertTemperature(test.given), 0.0001)
		})
	}
}

func TestHS3003_DecodeBoundaries(t *testing.T) {
	min := decodeMeasurement([4]byte{0x00, 0x00, 0x00, 0x00})
	assert.InDelta(t, 0.0, min.Humidity, 0.001)
	assert.InDelta(t, -40.0, min.Temperature, 0.001)

	max := decodeMeasurement([4]byte{0xFF, 0xFF, 0xFF, 0xFC})
	assert.InDelta(t, 100.0, max.Humidity, 0.001)
	assert.InDelta(t, 125.0, max.Temperature, 0.001)
}

func TestHS3003_DecodeTypical(t *testing.T) {
	m := decodeMeasurement([4]byte{0x1F, 0xFF, 0x66, 0x64})
	assert.InDelta(t, 50.0, m.Humidity, 0.1)
	assert.InDelta(t, 26.0, m.Temperature, 0.5)
}

func TestHS3003_DecodeStatusBitsIgnored(t *testing.T) {
	clear := decodeMeasurement([4]byte{0x1F, 0xFF, 0x66, 0x64})
	flagged := decodeMeasurement([4]byte{0xDF, 0xFF, 0x66, 0x64})
	assert.Equal(t, clear.Humidity, flagged.Humidity)
	assert.Equal(t, clear.Temperature, flagged.Temperature)
}

func TestHS3003_DecodeDeterministicAndBounded(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		var resp [4]byte
		rnd.Read(resp[:])

		first := decodeMeasurement(resp)
		second := decodeMeasurement(resp)
		assert.Equal(t, first, second, "decode of %x not deterministic", resp)

		assert.GreaterOrEqual(t, first.Humidity, float32(0.0), "humidity below range for %x", resp)
		assert.LessOrEqual(t, first.Humidity, float32(100.0), "humidity above range for %x", resp)
		assert.GreaterOrEqual(t, first.Temperature, float32(-40.0), "temperature below range for %x", resp)
		assert.LessOrEqual(t, first.Temperature, float32(125.0), "temperature above range for %x", resp)
	}
}

func TestHS3003_ReadProtocolSequence(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{0x00}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return([]byte{0x1F, 0xFF, 0x66, 0x64}, nil).Once()

	sensor := New(bus)
	delay := &countingDelay{}
	m, err := sensor.Read(context.Background(), delay)

	assert.NoError(t, err)
	assert.InDelta(t, 50.0, m.Humidity, 0.1)
	assert.InDelta(t, 26.0, m.Temperature, 0.5)

	// exactly one write then one read, settle wait in between
	bus.AssertExpectations(t)
	assert.Len(t, bus.Calls, 2)
	assert.Equal(t, "WriteToAddr", bus.Calls[0].Method)
	assert.Equal(t, "ReadFromAddr", bus.Calls[1].Method)
	assert.Equal(t, []uint32{100_000}, delay.calls)
}

func TestHS3003_ReadWriteFailure(t *testing.T) {
	busErr := fmt.Errorf("no ack from device")
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{0x00}).
		Return(busErr).Once()

	sensor := New(bus)
	delay := &countingDelay{}
	_, err := sensor.Read(context.Background(), delay)

	assert.Error(t, err)
	assert.ErrorIs(t, err, busErr)
	var wrapped *BusError
	assert.ErrorAs(t, err, &wrapped)
	assert.Equal(t, busErr, wrapped.Err)

	// trigger failed, so neither the settle wait nor the read happens
	assert.Empty(t, delay.calls)
	bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
}

func TestHS3003_ReadFailure(t *testing.T) {
	busErr := fmt.Errorf("device removed")
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{0x00}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil, busErr).Once()

	sensor := New(bus)
	_, err := sensor.Read(context.Background(), NoopDelay{})

	assert.ErrorIs(t, err, busErr)
	bus.AssertExpectations(t)
}

func TestHS3003_CustomAddress(t *testing.T) {
	bus := new(MockI2CBus)
	bus.On("WriteToAddr", mock.Anything, byte(0x45), []byte{0x00}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(0x45), mock.Anything).
		Return([]byte{0x00, 0x00, 0x00, 0x00}, nil).Once()

	sensor := NewWithAddress(bus, 0x45)
	_, err := sensor.Read(context.Background(), NoopDelay{})

	assert.NoError(t, err)
	bus.AssertExpectations(t)
}

func TestHS3003_DefaultAddress(t *testing.T) {
	sensor := New(new(MockI2CBus))
	assert.Equal(t, byte(0x44), sensor.address)
}

func TestHS3003_Release(t *testing.T) {
	bus := new(MockI2CBus)
	sensor := New(bus)
	returned := sensor.Release()
	assert.Same(t, bus, returned)
}

package hs3003

import (
	"context"
	"encoding/binary"
)

// DefaultAddress is the factory-programmed 7-bit I2C address of the HS3003.
const DefaultAddress = 0x44

// Conversion of both channels takes well under 100ms; the datasheet wait
// is a protocol requirement, not a knob, so it stays internal.
const measurementTimeUs uint32 = 100_000

// Full-scale raw count of the 14-bit measurement fields.
const fullScale = float32(1<<14 - 1)

// TempHumSensor is the surface application code reads environmental
// values through. Satisfied by *HS3003 and by MockTempHumSensor.
type TempHumSensor interface {
	GetTemperature(ctx context.Context) (float32, error)
	GetHumidity(ctx context.Context) (float32, error)
	GetTempAndHum(ctx context.Context) (float32, float32, error)
}

// Measurement is one decoded sensor reading.
type Measurement struct {
	// Temperature in degrees Celsius, -40 to +125 full scale.
	Temperature float32
	// Humidity in percent relative humidity, 0 to 100 full scale.
	Humidity float32
}

// HS3003 represents a Renesas HS3003 relative humidity and temperature
// sensor. The driver owns its transport exclusively until Release is
// called; it keeps no other state, so Read may be invoked repeatedly
// from a plain loop.
//
// The sensor's protocol is a fixed blocking sequence: an addressed
// write of the single trigger byte 0x00, a 100ms conversion wait, then
// an addressed read of 4 bytes. The top 2 bits of the first byte are
// status flags whose datasheet meaning is not covered here; they are
// masked off and otherwise ignored.
type HS3003 struct {
	transport I2CBus
	address   byte
}

var _ TempHumSensor = &HS3003{}

// New binds the sensor at its default address 0x44.
func New(trans I2CBus) *HS3003 {
	return NewWithAddress(trans, DefaultAddress)
}

// NewWithAddress binds a sensor programmed to a non-default address.
// The address is not validated; a wrong one surfaces as a bus error on
// the first Read.
func NewWithAddress(trans I2CBus, address byte) *HS3003 {
	return &HS3003{transport: trans, address: address}
}

// Read triggers a measurement, waits out the conversion using the given
// delay provider and returns the decoded result. The first transport
// failure aborts the exchange and is returned wrapped in *BusError; no
// retry is attempted and no partial result is ever produced.
func (sensor *HS3003) Read(ctx context.Context, delay Delayer) (Measurement, error) {
	err := sensor.transport.WriteToAddr(ctx, sensor.address, []byte{0x00})
	if err != nil {
		return Measurement{}, &BusError{Err: err}
	}
	delay.DelayMicroseconds(measurementTimeUs)
	var resp [4]byte
	err = sensor.transport.ReadFromAddr(ctx, sensor.address, resp[:])
	if err != nil {
		return Measurement{}, &BusError{Err: err}
	}
	return decodeMeasurement(resp), nil
}

// Release consumes the driver and hands the transport back so other bus
// clients can use it. The driver must not be used afterwards.
func (sensor *HS3003) Release() I2CBus {
	trans := sensor.transport
	sensor.transport = nil
	return trans
}

// GetTemperature performs a single measurement and returns temperature in Celsius.
func (sensor *HS3003) GetTemperature(ctx context.Context) (float32, error) {
	m, err := sensor.Read(ctx, TimerDelay{})
	return m.Temperature, err
}

// GetHumidity performs a single measurement and returns relative humidity in %RH.
func (sensor *HS3003) GetHumidity(ctx context.Context) (float32, error) {
	m, err := sensor.Read(ctx, TimerDelay{})
	return m.Humidity, err
}

// GetTempAndHum performs a single measurement and returns temperature and humidity.
func (sensor *HS3003) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	m, err := sensor.Read(ctx, TimerDelay{})
	return m.Temperature, m.Humidity, err
}

// decodeMeasurement unpacks a raw 4-byte sample. Pure function of its
// input; it cannot fail.
func decodeMeasurement(resp [4]byte) Measurement {
	return Measurement{
		Humidity:    convertHumidity(resp[0:2]),
		Temperature: convertTemperature(resp[2:4]),
	}
}

// convertHumidity decodes the humidity word: 2 status bits masked off,
// 14-bit big-endian count scaled to percent.
func convertHumidity(resp []byte) float32 {
	raw := binary.BigEndian.Uint16([]byte{resp[0] & 0x3F, resp[1]})
	return float32(raw) / fullScale * 100
}

// convertTemperature decodes the temperature word: 16-bit big-endian
// value with 2 unused low bits shifted out, scaled to Celsius.
func convertTemperature(resp []byte) float32 {
	raw := binary.BigEndian.Uint16(resp) >> 2
	return float32(raw)/fullScale*165 - 40
}

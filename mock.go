package hs3003

import (
	"context"
)

// TemperatureBehaviorFunc defines the function signature for temperature behavior.
// It returns the temperature in Celsius or an error.
type TemperatureBehaviorFunc func(ctx context.Context) (float32, error)

// HumidityBehaviorFunc defines the function signature for humidity behavior.
// It returns the relative humidity in %RH or an error.
type HumidityBehaviorFunc func(ctx context.Context) (float32, error)

// MockTempHumSensor is a TempHumSensor backed by behavior functions so
// application code can run without hardware attached.
type MockTempHumSensor struct {
	tempBehavior TemperatureBehaviorFunc
	humBehavior  HumidityBehaviorFunc
}

var _ TempHumSensor = &MockTempHumSensor{}

// NewMockTempHumSensor creates a mock sensor with the given behavior functions.
// The temperature behavior is called by GetTemperature() and GetTempAndHum();
// the humidity behavior by GetHumidity() and GetTempAndHum().
//
// Example usage:
//
//	sensor := NewMockTempHumSensor(
//		func(ctx context.Context) (float32, error) { return 22.5, nil },
//		func(ctx context.Context) (float32, error) { return 45.0, nil },
//	)
func NewMockTempHumSensor(tempBehavior TemperatureBehaviorFunc, humBehavior HumidityBehaviorFunc) *MockTempHumSensor {
	return &MockTempHumSensor{
		tempBehavior: tempBehavior,
		humBehavior:  humBehavior,
	}
}

// GetTemperature returns the temperature by calling the temperature behavior function.
func (m *MockTempHumSensor) GetTemperature(ctx context.Context) (float32, error) {
	return m.tempBehavior(ctx)
}

// GetHumidity returns the humidity by calling the humidity behavior function.
func (m *MockTempHumSensor) GetHumidity(ctx context.Context) (float32, error) {
	return m.humBehavior(ctx)
}

// GetTempAndHum returns both temperature and humidity by calling both behavior functions.
func (m *MockTempHumSensor) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	temp, err := m.tempBehavior(ctx)
	if err != nil {
		return 0, 0, err
	}
	hum, err := m.humBehavior(ctx)
	if err != nil {
		return 0, 0, err
	}
	return temp, hum, nil
}

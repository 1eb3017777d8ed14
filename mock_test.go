package hs3003

import (
	"context"
	"fmt"
	"testing"
)

func TestMockTempHumSensor_StaticValues(t *testing.T) {
	sensor := NewMockTempHumSensor(
		func(ctx context.Context) (float32, error) { return 22.5, nil },
		func(ctx context.Context) (float32, error) { return 45.0, nil },
	)

	ctx := context.Background()

	temp, err := sensor.GetTemperature(ctx)
	if err != nil {
		t.Fatalf("GetTemperature: unexpected error: %v", err)
	}
	if temp != 22.5 {
		t.Errorf("expected temperature 22.5, got %f", temp)
	}

	hum, err := sensor.GetHumidity(ctx)
	if err != nil {
		t.Fatalf("GetHumidity: unexpected error: %v", err)
	}
	if hum != 45.0 {
		t.Errorf("expected humidity 45.0, got %f", hum)
	}

	temp2, hum2, err := sensor.GetTempAndHum(ctx)
	if err != nil {
		t.Fatalf("GetTempAndHum: unexpected error: %v", err)
	}
	if temp2 != 22.5 || hum2 != 45.0 {
		t.Errorf("expected 22.5/45.0, got %f/%f", temp2, hum2)
	}
}

func TestMockTempHumSensor_DynamicBehavior(t *testing.T) {
	currentTemp := float32(20.0)
	currentHum := float32(50.0)

	sensor := NewMockTempHumSensor(
		func(ctx context.Context) (float32, error) { return currentTemp, nil },
		func(ctx context.Context) (float32, error) { return currentHum, nil },
	)

	ctx := context.Background()

	temp, hum, err := sensor.GetTempAndHum(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 20.0 || hum != 50.0 {
		t.Errorf("expected 20.0/50.0, got %f/%f", temp, hum)
	}

	currentTemp = 25.0
	currentHum = 60.0

	temp, hum, err = sensor.GetTempAndHum(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 25.0 || hum != 60.0 {
		t.Errorf("expected 25.0/60.0, got %f/%f", temp, hum)
	}
}

func TestMockTempHumSensor_ErrorHandling(t *testing.T) {
	sensor := NewMockTempHumSensor(
		func(ctx context.Context) (float32, error) {
			return 0, fmt.Errorf("temperature sensor error")
		},
		func(ctx context.Context) (float32, error) {
			return 0, fmt.Errorf("humidity sensor error")
		},
	)

	ctx := context.Background()

	_, err := sensor.GetTemperature(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("GetTemperature: expected specific error, got %v", err)
	}

	_, err = sensor.GetHumidity(ctx)
	if err == nil || err.Error() != "humidity sensor error" {
		t.Errorf("GetHumidity: expected specific error, got %v", err)
	}

	// temperature behavior runs first and short-circuits
	_, _, err = sensor.GetTempAndHum(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("GetTempAndHum: expected temperature sensor error, got %v", err)
	}
}

func TestMockTempHumSensor_ContextUsage(t *testing.T) {
	var receivedTempCtx context.Context
	var receivedHumCtx context.Context

	sensor := NewMockTempHumSensor(
		func(ctx context.Context) (float32, error) {
			receivedTempCtx = ctx
			return 20.0, nil
		},
		func(ctx context.Context) (float32, error) {
			receivedHumCtx = ctx
			return 50.0, nil
		},
	)

	type contextKey string
	key := contextKey("test")
	ctx := context.WithValue(context.Background(), key, "test-value")

	_, _, err := sensor.GetTempAndHum(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receivedTempCtx.Value(key) != "test-value" {
		t.Error("context was not passed through to temperature behavior")
	}
	if receivedHumCtx.Value(key) != "test-value" {
		t.Error("context was not passed through to humidity behavior")
	}
}

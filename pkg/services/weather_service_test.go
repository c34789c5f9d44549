package services

import (
	"strings"
	"testing"
)

func TestWeatherReport_KnownCity(t *testing.T) {
	svc := NewWeatherService()

	report := svc.Report("Santiago, Chile")
	if report.Current.Temperature != 22 {
		t.Errorf("expected Santiago baseline 22, got %d", report.Current.Temperature)
	}
	if len(report.Forecast) != 7 {
		t.Fatalf("expected 7 forecast days, got %d", len(report.Forecast))
	}
	for _, day := range report.Forecast {
		if day.MinTemp >= day.MaxTemp {
			t.Errorf("day %s: min %d not below max %d", day.Date, day.MinTemp, day.MaxTemp)
		}
	}
}

func TestWeatherReport_UnknownLocationGetsDefault(t *testing.T) {
	svc := NewWeatherService()

	report := svc.Report("Nowhere Particular")
	if report.Current.Temperature != 20 {
		t.Errorf("expected default 20, got %d", report.Current.Temperature)
	}
	if report.Current.Description != "Temperate" {
		t.Errorf("expected temperate default, got %q", report.Current.Description)
	}
	if report.GardeningTip == "" {
		t.Error("expected a gardening tip")
	}
}

func TestGardeningTip_Rules(t *testing.T) {
	tests := []struct {
		current CurrentWeather
		want    string
	}{
		{CurrentWeather{Temperature: 20, Description: "Light rain"}, "hydrate"},
		{CurrentWeather{Temperature: 30, Description: "Sunny"}, "Water early"},
		{CurrentWeather{Temperature: 5, Description: "Clear"}, "cold-sensitive"},
		{CurrentWeather{Temperature: 22, Description: "Sunny"}, "outdoor gardening"},
		{CurrentWeather{Temperature: 18, Description: "Cloudy"}, "general garden"},
	}
	for _, tt := range tests {
		got := gardeningTip(tt.current)
		if !strings.Contains(got, tt.want) {
			t.Errorf("tip for %+v = %q, want substring %q", tt.current, got, tt.want)
		}
	}
}
